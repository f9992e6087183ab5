package domain

import "strings"

// NoParent is the Parent value of a root-level atom.
const NoParent = -1

// Span marks a half-open [Start, End) byte range within the parent atom's
// raw text. For root atoms the offsets index the document text. A span
// covers the atom's segment plus any delimiter text that followed it, so
// sibling spans tile the parent span without gaps or overlaps.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Atom is one node of the hierarchical text decomposition.
//
// Atoms are stored in a flat arena owned by their Document. Parent and
// Children hold arena indices rather than pointers, which keeps upward
// traversal O(1) without cyclic ownership.
type Atom struct {
	// ID is unique within a corpus and stable across re-runs on identical
	// input and configuration. Assigned once at creation.
	ID string `json:"id"`

	// Level indexes the corpus schema's level list. A child's level is
	// always exactly one greater than its parent's.
	Level int `json:"level"`

	// Text is the atom's segment with surrounding delimiter whitespace
	// trimmed. Always a verbatim substring of the source document.
	Text string `json:"text"`

	// Span locates the atom's raw coverage within the parent's raw text.
	Span Span `json:"span"`

	// Parent is the arena index of the owning atom, NoParent for roots.
	Parent int `json:"parent"`

	// Children lists arena indices of child atoms in document order.
	// Empty at the leaf level.
	Children []int `json:"children,omitempty"`
}

// IsLeaf returns true if the atom has no children.
func (a *Atom) IsLeaf() bool {
	return len(a.Children) == 0
}

// Excerpt returns the atom text truncated to max runes for display.
func (a *Atom) Excerpt(max int) string {
	runes := []rune(a.Text)
	if len(runes) <= max {
		return a.Text
	}
	return strings.TrimRight(string(runes[:max]), " ") + "..."
}
