package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile_Valid(t *testing.T) {
	p, err := NewProfile("military", "ranks and gear",
		map[string]float64{"honor": 2.5, "wound": -3.0},
		[]EntityPattern{
			{Label: "RANK", Pattern: `\b(sergeant|captain)\b`},
		})
	require.NoError(t, err)

	assert.Equal(t, "military", p.Name)
	assert.Len(t, p.Lexicon, 2)

	compiled := p.CompiledPatterns()
	require.Contains(t, compiled, "RANK")
	// Entity matching is case-insensitive.
	assert.True(t, compiled["RANK"].MatchString("the Captain said"))
}

func TestNewProfile_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		profName string
		lexicon  map[string]float64
		patterns []EntityPattern
	}{
		{"missing name", "", nil, nil},
		{"score above bound", "p", map[string]float64{"x": 5.1}, nil},
		{"score below bound", "p", map[string]float64{"x": -6.0}, nil},
		{"pattern without label", "p", nil, []EntityPattern{{Pattern: `x`}}},
		{"duplicate labels", "p", nil, []EntityPattern{
			{Label: "A", Pattern: `x`},
			{Label: "A", Pattern: `y`},
		}},
		{"invalid pattern", "p", nil, []EntityPattern{{Label: "A", Pattern: `[`}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfile(tt.profName, "", tt.lexicon, tt.patterns)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestNewProfile_CopiesInputs(t *testing.T) {
	lexicon := map[string]float64{"joy": 3.0}
	p, err := NewProfile("p", "", lexicon, nil)
	require.NoError(t, err)

	lexicon["joy"] = -3.0
	assert.Equal(t, 3.0, p.Lexicon["joy"], "profile must not alias the caller's map")
}
