// Package atomizer transforms raw text into a multi-level atom tree.
//
// Splitting walks the schema's levels coarsest to finest. A level's rule
// matches delimiters; each delimiter stays inside the span of the segment
// it terminates, so sibling spans tile their parent exactly and the source
// text can always be rebuilt from leaf spans. Atom text is the segment with
// surrounding delimiter whitespace trimmed off.
package atomizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
)

// Atomizer builds atom trees for one corpus. It carries the id uniqueness
// set across documents, so construct a fresh Atomizer per corpus.
type Atomizer struct {
	schema *domain.Schema
	naming driven.NamingStrategy
	seen   map[string]bool
}

// New creates an atomizer for a schema and naming strategy.
func New(schema *domain.Schema, strategy driven.NamingStrategy) (*Atomizer, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: nil schema", domain.ErrAtomization)
	}
	if strategy == nil {
		return nil, fmt.Errorf("%w: nil naming strategy", domain.ErrAtomization)
	}
	return &Atomizer{
		schema: schema,
		naming: strategy,
		seen:   make(map[string]bool),
	}, nil
}

// AtomizeDocument fills the document's atom arena and roots from its Text.
func (a *Atomizer) AtomizeDocument(doc *domain.Document) error {
	atoms, roots, err := a.Atomize(doc.Text)
	if err != nil {
		return err
	}
	doc.Atoms = atoms
	doc.Roots = roots
	return nil
}

// Atomize splits text into the schema's levels and returns the atom arena
// plus the arena indices of the root atoms. Empty text yields no atoms.
func (a *Atomizer) Atomize(text string) ([]domain.Atom, []int, error) {
	b := &builder{Atomizer: a}
	roots, err := b.atomizeLevel(text, 0, domain.NoParent, nil)
	if err != nil {
		return nil, nil, err
	}
	return b.atoms, roots, nil
}

// builder accumulates the arena for one Atomize call.
type builder struct {
	*Atomizer
	atoms []domain.Atom
}

// segment is one split piece: a raw span within the input plus its
// delimiter-trimmed text.
type segment struct {
	start, end int
	text       string
}

func (b *builder) atomizeLevel(raw string, level, parent int, ancestorIDs []string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}

	segs := b.splitLevel(raw, level)
	indices := make([]int, 0, len(segs))

	for i, seg := range segs {
		id := b.assignID(level, i, ancestorIDs, seg.text)
		idx := len(b.atoms)
		b.atoms = append(b.atoms, domain.Atom{
			ID:     id,
			Level:  level,
			Text:   seg.text,
			Span:   domain.Span{Start: seg.start, End: seg.end},
			Parent: parent,
		})

		if level+1 < b.schema.Depth() {
			childAncestors := append(append([]string(nil), ancestorIDs...), id)
			children, err := b.atomizeLevel(raw[seg.start:seg.end], level+1, idx, childAncestors)
			if err != nil {
				return nil, err
			}
			b.atoms[idx].Children = children
		}

		indices = append(indices, idx)
	}

	return indices, nil
}

// assignID generates an id and enforces corpus-wide uniqueness. A strategy
// that produces a collision (content slugs under equal text, for example)
// gets a deterministic counter suffix rather than a silent overwrite.
func (b *builder) assignID(level int, localIndex int, ancestorIDs []string, text string) string {
	levelName := b.schema.Levels[level].Name
	id := b.naming.GenerateID(levelName, localIndex, ancestorIDs, text)

	if b.seen[id] {
		base := id
		for n := 2; ; n++ {
			id = fmt.Sprintf("%s~%d", base, n)
			if !b.seen[id] {
				break
			}
		}
	}
	b.seen[id] = true
	return id
}

// splitLevel splits raw into segments per the level's rule.
// A rule that matches nowhere degenerates to a single segment covering the
// whole input; non-empty input never yields zero segments.
func (b *builder) splitLevel(raw string, level int) []segment {
	if b.schema.Levels[level].Rule == domain.RuleRunes {
		return splitRunes(raw)
	}
	return splitDelimited(raw, b.schema.Splitter(level))
}

// splitDelimited segments raw around delimiter matches. Each delimiter is
// absorbed into the span of the segment before it; delimiters with nothing
// before them fold into the following segment. Pieces whose between-match
// text is blank never become atoms, but their bytes stay covered.
func splitDelimited(raw string, re *regexp.Regexp) []segment {
	var matches [][]int
	if re != nil {
		matches = re.FindAllStringIndex(raw, -1)
	}

	var segs []segment
	spanStart := 0
	textStart := 0

	flush := func(textEnd, spanEnd int) {
		if strings.TrimSpace(raw[textStart:textEnd]) == "" {
			// Blank piece: fold the covered bytes into a neighbour.
			if n := len(segs); n > 0 {
				segs[n-1].end = spanEnd
				spanStart = spanEnd
			}
			textStart = spanEnd
			return
		}
		segs = append(segs, segment{
			start: spanStart,
			end:   spanEnd,
			text:  strings.TrimSpace(raw[spanStart:spanEnd]),
		})
		spanStart = spanEnd
		textStart = spanEnd
	}

	for _, m := range matches {
		flush(m[0], m[1])
	}
	if spanStart < len(raw) || len(segs) == 0 {
		flush(len(raw), len(raw))
	}

	if len(segs) == 0 {
		// Whole input is delimiter or whitespace text: degenerate to one
		// atom spanning it all so no bytes are lost.
		segs = append(segs, segment{start: 0, end: len(raw), text: raw})
	}

	return segs
}

// splitRunes makes one segment per rune. Whitespace runes fold into the
// preceding segment's span.
func splitRunes(raw string) []segment {
	var segs []segment
	spanStart := 0

	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		end := i + size
		if unicode.IsSpace(r) {
			if n := len(segs); n > 0 {
				segs[n-1].end = end
				spanStart = end
			}
			i = end
			continue
		}
		segs = append(segs, segment{start: spanStart, end: end, text: raw[i:end]})
		spanStart = end
		i = end
	}

	if len(segs) == 0 && raw != "" {
		segs = append(segs, segment{start: 0, end: len(raw), text: raw})
	}
	return segs
}

// BuildCorpus atomizes the given documents under one schema and naming
// strategy and returns the frozen corpus. Document atom ids are unique
// across the whole corpus.
func BuildCorpus(name string, schema *domain.Schema, strategy driven.NamingStrategy, docs []domain.Document) (*domain.Corpus, error) {
	a, err := New(schema, strategy)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if err := a.AtomizeDocument(&docs[i]); err != nil {
			return nil, fmt.Errorf("atomizing document %q: %w", docs[i].Title, err)
		}
	}
	return &domain.Corpus{
		Name:      name,
		Documents: docs,
		Schema:    schema,
		CreatedAt: time.Now(),
	}, nil
}
