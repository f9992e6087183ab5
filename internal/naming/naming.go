// Package naming provides the built-in atom naming strategies.
//
// A strategy maps (level, sibling index, ancestor chain, text) to a stable
// identifier. All built-ins are deterministic over the atomizer's traversal
// order; the registry hands out a fresh instance per atomization run so no
// state leaks between runs.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
)

// Built-in strategy names.
const (
	StrategyCounter      = "counter"
	StrategyHierarchical = "hierarchical"
	StrategySlug         = "slug"
	StrategyHybrid       = "hybrid"
)

// DefaultStrategy is used when no naming strategy is configured.
const DefaultStrategy = StrategyHierarchical

// slugMaxLen caps slug length in bytes.
const slugMaxLen = 24

// slugWords is how many leading words feed a slug.
const slugWords = 4

// Factories returns the built-in strategy factories keyed by name.
func Factories() map[string]driven.NamingFactory {
	return map[string]driven.NamingFactory{
		StrategyCounter:      func() driven.NamingStrategy { return NewCounter() },
		StrategyHierarchical: func() driven.NamingStrategy { return Hierarchical{} },
		StrategySlug:         func() driven.NamingStrategy { return Slug{} },
		StrategyHybrid:       func() driven.NamingStrategy { return Hybrid{} },
	}
}

// levelPrefix derives the id prefix letter from a level name.
func levelPrefix(level string) string {
	r := []rune(level)
	if len(r) == 0 {
		return "X"
	}
	return strings.ToUpper(string(r[0]))
}

// pad returns a 1-based ordinal zero-padded by tree depth, mirroring the
// widening id scheme of manuscript atomization (T001, P0002, S00003, ...).
func pad(index, depth int) string {
	return fmt.Sprintf("%0*d", 3+depth, index+1)
}

// Counter issues level-prefixed sequential ids (T001, P0001, S00001).
// The sequence is per level and per atomization run; construct a fresh
// Counter for each run so repeated atomization yields identical ids.
type Counter struct {
	next map[string]int
}

// NewCounter creates a counter strategy with all sequences at zero.
func NewCounter() *Counter {
	return &Counter{next: make(map[string]int)}
}

// GenerateID implements driven.NamingStrategy.
func (c *Counter) GenerateID(level string, _ int, ancestorIDs []string, _ string) string {
	n := c.next[level]
	c.next[level] = n + 1
	return levelPrefix(level) + pad(n, len(ancestorIDs))
}

// Hierarchical composes ancestor positions into dotted ids
// (T001, T001.P0002, T001.P0002.S00003). Pure and collision-free.
type Hierarchical struct{}

// GenerateID implements driven.NamingStrategy.
func (Hierarchical) GenerateID(level string, localIndex int, ancestorIDs []string, _ string) string {
	own := levelPrefix(level) + pad(localIndex, len(ancestorIDs))
	if len(ancestorIDs) == 0 {
		return own
	}
	return ancestorIDs[len(ancestorIDs)-1] + "." + own
}

// Slug derives ids from the atom's leading words, namespaced by the parent
// id so equal text under different parents cannot collide. Sibling slug
// collisions are disambiguated by the atomizer with a deterministic counter
// suffix rather than silently overwritten.
type Slug struct{}

// GenerateID implements driven.NamingStrategy.
func (Slug) GenerateID(level string, localIndex int, ancestorIDs []string, text string) string {
	slug := Slugify(text)
	if slug == "" {
		slug = strings.ToLower(levelPrefix(level)) + pad(localIndex, len(ancestorIDs))
	}
	if len(ancestorIDs) == 0 {
		return slug
	}
	return ancestorIDs[len(ancestorIDs)-1] + ":" + slug
}

// Hybrid combines a content slug with a positional suffix for guaranteed
// uniqueness without a disambiguation pass.
type Hybrid struct{}

// GenerateID implements driven.NamingStrategy.
func (Hybrid) GenerateID(level string, localIndex int, ancestorIDs []string, text string) string {
	slug := Slugify(text)
	if slug == "" {
		slug = strings.ToLower(levelPrefix(level))
	}
	own := slug + "-" + pad(localIndex, len(ancestorIDs))
	if len(ancestorIDs) == 0 {
		return own
	}
	return ancestorIDs[len(ancestorIDs)-1] + ":" + own
}

// Slugify lowercases the leading words of text, keeps letters and digits,
// joins with hyphens and truncates to a bounded length.
func Slugify(text string) string {
	fields := strings.Fields(text)
	if len(fields) > slugWords {
		fields = fields[:slugWords]
	}

	var b strings.Builder
	for i, f := range fields {
		var w strings.Builder
		for _, r := range f {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				w.WriteRune(unicode.ToLower(r))
			}
		}
		if w.Len() == 0 {
			continue
		}
		if i > 0 && b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteString(w.String())
	}

	slug := b.String()
	if len(slug) > slugMaxLen {
		// Back up to a rune boundary so the cut never leaves a partial
		// multibyte sequence in the id.
		cut := slugMaxLen
		for cut > 0 && !utf8.RuneStart(slug[cut]) {
			cut--
		}
		slug = strings.TrimRight(slug[:cut], "-")
	}
	return slug
}
