// Package schemas defines the built-in atomization schemas.
package schemas

import "github.com/lexframe-labs/lexframe-cli/internal/core/domain"

// Delimiter patterns shared across the built-in schemas.
const (
	// paragraphBreak matches one or more blank lines.
	paragraphBreak = `\r?\n(?:[ \t]*\r?\n)+`
	// themeBreak matches two or more blank lines separating sections.
	themeBreak = `\r?\n(?:[ \t]*\r?\n){2,}`
	// sentenceEnd matches terminal punctuation with optional closing
	// quotes or brackets, followed by whitespace.
	sentenceEnd = `[.!?]+["')\]]*\s+`
	// wordBreak matches runs of whitespace.
	wordBreak = `\s+`
)

// Builtins constructs the built-in schemas. Definitions are validated
// at startup, so construction cannot fail.
func Builtins() []*domain.Schema {
	prose := mustSchema("prose", []domain.LevelDef{
		{Name: "paragraph", Pattern: paragraphBreak, Weight: 0.5},
		{Name: "sentence", Pattern: sentenceEnd, Weight: 0.3},
		{Name: "word", Pattern: wordBreak, Weight: 0.2},
	})

	manuscript := mustSchema("manuscript", []domain.LevelDef{
		{Name: "theme", Pattern: themeBreak, Weight: 0.4},
		{Name: "paragraph", Pattern: paragraphBreak, Weight: 0.3},
		{Name: "sentence", Pattern: sentenceEnd, Weight: 0.2},
		{Name: "word", Pattern: wordBreak, Weight: 0.1},
	})

	deep := mustSchema("deep", []domain.LevelDef{
		{Name: "theme", Pattern: themeBreak, Weight: 0.3},
		{Name: "paragraph", Pattern: paragraphBreak, Weight: 0.25},
		{Name: "sentence", Pattern: sentenceEnd, Weight: 0.2},
		{Name: "word", Pattern: wordBreak, Weight: 0.15},
		{Name: "letter", Rule: domain.RuleRunes, Weight: 0.1},
	})

	return []*domain.Schema{prose, manuscript, deep}
}

func mustSchema(name string, levels []domain.LevelDef) *domain.Schema {
	s, err := domain.NewSchema(name, levels)
	if err != nil {
		panic(err)
	}
	return s
}
