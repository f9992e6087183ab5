// Package textutil provides the traversal and tokenization helpers shared
// by the analysis modules.
package textutil

import (
	"math"
	"strings"
	"unicode"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

// stopwords excluded from term statistics.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "i": true, "in": true, "is": true, "it": true, "its": true,
	"my": true, "not": true, "of": true, "on": true, "or": true,
	"our": true, "she": true, "that": true, "the": true, "their": true,
	"them": true, "there": true, "they": true, "this": true, "to": true,
	"was": true, "we": true, "were": true, "with": true, "you": true,
}

// IsStopword reports whether the lowercase token is a stopword.
func IsStopword(token string) bool {
	return stopwords[token]
}

// Tokenize lowercases text and splits it into letter/digit runs.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			b.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// ContentTokens tokenizes and drops stopwords and single characters.
func ContentTokens(text string) []string {
	var out []string
	for _, tok := range Tokenize(text) {
		if len(tok) > 1 && !IsStopword(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// Unit is one analysis unit (typically a sentence) with its grouping
// context (typically the theme it belongs to).
type Unit struct {
	DocIndex   int
	AtomIndex  int
	ID         string
	Text       string
	GroupID    string
	GroupTitle string
	Ordinal    int // 1-based position across the corpus
}

// UnitLevel picks the level analysis units come from: the level named
// "sentence" when the schema has one, otherwise the second-finest level.
func UnitLevel(corpus *domain.Corpus) int {
	if idx := corpus.LevelIndex("sentence"); idx >= 0 {
		return idx
	}
	if corpus.Schema.Depth() >= 2 {
		return corpus.Schema.Depth() - 2
	}
	return 0
}

// groupTitleLen caps group titles derived from atom text.
const groupTitleLen = 48

// Units collects all analysis units across the corpus in document order.
// The group is each unit's root-level ancestor.
func Units(corpus *domain.Corpus) []Unit {
	level := UnitLevel(corpus)
	var units []Unit

	for d := range corpus.Documents {
		doc := &corpus.Documents[d]
		for _, idx := range doc.AtLevel(level) {
			atom := &doc.Atoms[idx]
			root := idx
			for doc.Atoms[root].Parent != domain.NoParent {
				root = doc.Atoms[root].Parent
			}
			units = append(units, Unit{
				DocIndex:   d,
				AtomIndex:  idx,
				ID:         atom.ID,
				Text:       atom.Text,
				GroupID:    doc.Atoms[root].ID,
				GroupTitle: doc.Atoms[root].Excerpt(groupTitleLen),
				Ordinal:    len(units) + 1,
			})
		}
	}
	return units
}

// Groups returns the root-level atoms of the corpus with their ids and
// texts, in document order.
func Groups(corpus *domain.Corpus) []Unit {
	var groups []Unit
	for d := range corpus.Documents {
		doc := &corpus.Documents[d]
		for _, idx := range doc.Roots {
			atom := &doc.Atoms[idx]
			groups = append(groups, Unit{
				DocIndex:   d,
				AtomIndex:  idx,
				ID:         atom.ID,
				Text:       atom.Text,
				GroupID:    atom.ID,
				GroupTitle: atom.Excerpt(groupTitleLen),
				Ordinal:    len(groups) + 1,
			})
		}
	}
	return groups
}

// Mean returns the arithmetic mean, 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Stdev returns the sample standard deviation, 0 for fewer than two values.
func Stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
