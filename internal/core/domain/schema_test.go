package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema_Valid(t *testing.T) {
	s, err := NewSchema("prose", []LevelDef{
		{Name: "sentence", Pattern: `[.!?]+\s+`, Weight: 0.7},
		{Name: "word", Pattern: `\s+`, Weight: 0.3},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, 1, s.LeafLevel())
	assert.NotNil(t, s.Splitter(0))
	assert.Equal(t, RuleRegex, s.Levels[0].Rule)
}

func TestNewSchema_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		levels []LevelDef
	}{
		{"no levels", nil},
		{"unnamed level", []LevelDef{{Pattern: `\s+`, Weight: 1.0}}},
		{"duplicate level names", []LevelDef{
			{Name: "word", Pattern: `\s+`, Weight: 0.5},
			{Name: "word", Pattern: `\s+`, Weight: 0.5},
		}},
		{"negative weight", []LevelDef{
			{Name: "a", Pattern: `\s+`, Weight: 1.5},
			{Name: "b", Pattern: `\s+`, Weight: -0.5},
		}},
		{"weights not summing to one", []LevelDef{
			{Name: "a", Pattern: `\s+`, Weight: 0.5},
			{Name: "b", Pattern: `\s+`, Weight: 0.4},
		}},
		{"invalid regex", []LevelDef{{Name: "a", Pattern: `[`, Weight: 1.0}}},
		{"empty-string-matching regex", []LevelDef{{Name: "a", Pattern: `x*`, Weight: 1.0}}},
		{"empty literal delimiter", []LevelDef{{Name: "a", Rule: RuleLiteral, Weight: 1.0}}},
		{"unknown rule kind", []LevelDef{{Name: "a", Rule: "magic", Pattern: `x`, Weight: 1.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema("bad", tt.levels)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestNewSchema_WeightTolerance(t *testing.T) {
	// A third each: the float sum misses 1.0 by well under the tolerance.
	_, err := NewSchema("thirds", []LevelDef{
		{Name: "a", Pattern: `\n`, Weight: 1.0 / 3},
		{Name: "b", Pattern: `\.`, Weight: 1.0 / 3},
		{Name: "c", Pattern: `\s`, Weight: 1.0 / 3},
	})
	assert.NoError(t, err)
}

func TestNewSchema_LiteralRule(t *testing.T) {
	s, err := NewSchema("csv", []LevelDef{
		{Name: "field", Rule: RuleLiteral, Pattern: ". ", Weight: 1.0},
	})
	require.NoError(t, err)

	// The literal is quoted: "." must not behave as a regex wildcard.
	re := s.Splitter(0)
	assert.True(t, re.MatchString("a. b"))
	assert.False(t, re.MatchString("axb"))
}

func TestNewSchema_RunesRuleHasNoSplitter(t *testing.T) {
	s, err := NewSchema("letters", []LevelDef{
		{Name: "letter", Rule: RuleRunes, Weight: 1.0},
	})
	require.NoError(t, err)
	assert.Nil(t, s.Splitter(0))
}
