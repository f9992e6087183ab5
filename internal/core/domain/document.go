package domain

import (
	"strings"
	"time"
)

// Document is one source text plus its atomized tree and metadata.
// It owns the atom arena exclusively.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// SourcePath is the original location of the text.
	SourcePath string `json:"source_path,omitempty"`

	// Format is the ingestion format tag (e.g. "plain", "markdown").
	Format string `json:"format"`

	// Text is the full extracted source text, byte for byte.
	Text string `json:"text"`

	// Atoms is the flat arena holding every atom of the tree.
	Atoms []Atom `json:"atoms"`

	// Roots lists arena indices of the top-level atoms in document order.
	Roots []int `json:"roots"`

	// Metadata contains arbitrary key-value pairs from extraction.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Raw returns the raw text an atom spans, delimiters included.
// The raw coverage is resolved by walking spans up to the document text.
func (d *Document) Raw(idx int) string {
	atom := &d.Atoms[idx]
	if atom.Parent == NoParent {
		return d.Text[atom.Span.Start:atom.Span.End]
	}
	parent := d.Raw(atom.Parent)
	return parent[atom.Span.Start:atom.Span.End]
}

// Ancestors returns the arena indices from the atom's parent up to its root.
func (d *Document) Ancestors(idx int) []int {
	var chain []int
	for p := d.Atoms[idx].Parent; p != NoParent; p = d.Atoms[p].Parent {
		chain = append(chain, p)
	}
	return chain
}

// AncestorIDs returns ancestor ids ordered root first.
func (d *Document) AncestorIDs(idx int) []string {
	chain := d.Ancestors(idx)
	ids := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		ids = append(ids, d.Atoms[chain[i]].ID)
	}
	return ids
}

// AtLevel returns arena indices of all atoms at the given level,
// in document order.
func (d *Document) AtLevel(level int) []int {
	var out []int
	d.Walk(func(idx int) bool {
		if d.Atoms[idx].Level == level {
			out = append(out, idx)
		}
		return true
	})
	return out
}

// Walk visits every atom in pre-order document order. The visitor returns
// false to skip the current atom's subtree.
func (d *Document) Walk(visit func(idx int) bool) {
	var rec func(idx int)
	rec = func(idx int) {
		if !visit(idx) {
			return
		}
		for _, c := range d.Atoms[idx].Children {
			rec(c)
		}
	}
	for _, r := range d.Roots {
		rec(r)
	}
}

// Reconstruct rebuilds the source text from the leaf atoms' raw coverage.
// Because sibling spans tile their parent and delimiters stay inside spans,
// the result equals Text exactly.
func (d *Document) Reconstruct() string {
	var b strings.Builder
	b.Grow(len(d.Text))
	var rec func(idx int, raw string)
	rec = func(idx int, raw string) {
		atom := &d.Atoms[idx]
		if atom.IsLeaf() {
			b.WriteString(raw)
			return
		}
		for _, c := range atom.Children {
			child := &d.Atoms[c]
			rec(c, raw[child.Span.Start:child.Span.End])
		}
	}
	for _, r := range d.Roots {
		root := &d.Atoms[r]
		rec(r, d.Text[root.Span.Start:root.Span.End])
	}
	return b.String()
}

// Corpus is an ordered collection of documents atomized under one schema.
// It is immutable once analysis begins; modules read it concurrently.
type Corpus struct {
	// Name labels the corpus in reports.
	Name string `json:"name"`

	// Documents holds the atomized documents in analysis order.
	Documents []Document `json:"documents"`

	// Schema is the level declaration all documents were atomized with.
	Schema *Schema `json:"schema"`

	// CreatedAt is when atomization completed.
	CreatedAt time.Time `json:"created_at"`
}

// AtomCount returns the total number of atoms across all documents.
func (c *Corpus) AtomCount() int {
	n := 0
	for i := range c.Documents {
		n += len(c.Documents[i].Atoms)
	}
	return n
}

// LevelIndex returns the schema index of the named level, or -1.
func (c *Corpus) LevelIndex(name string) int {
	if c.Schema == nil {
		return -1
	}
	for i, lvl := range c.Schema.Levels {
		if lvl.Name == name {
			return i
		}
	}
	return -1
}
