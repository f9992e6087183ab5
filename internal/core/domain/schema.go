package domain

import (
	"fmt"
	"math"
	"regexp"
)

// weightTolerance is the allowed deviation of the level-weight sum from 1.0.
const weightTolerance = 1e-6

// RuleKind selects how a level's split rule is interpreted.
type RuleKind string

const (
	// RuleRegex treats Pattern as a regular expression matching delimiters.
	RuleRegex RuleKind = "regex"
	// RuleLiteral treats Pattern as a literal delimiter string.
	RuleLiteral RuleKind = "literal"
	// RuleRunes splits the input into individual runes; Pattern is ignored.
	RuleRunes RuleKind = "runes"
)

// LevelDef declares one decomposition level of a schema.
type LevelDef struct {
	// Name is the level label (e.g. "paragraph"). Unique within a schema.
	Name string `json:"name"`

	// Rule selects the split interpretation. Defaults to RuleRegex.
	Rule RuleKind `json:"rule,omitempty"`

	// Pattern is the delimiter expression splitting a parent's text into
	// atoms of this level.
	Pattern string `json:"pattern,omitempty"`

	// Weight is this level's share in external score aggregation.
	// Weights across a schema sum to 1.0; the atomizer itself ignores them.
	Weight float64 `json:"weight"`
}

// Schema is the ordered declaration of decomposition levels.
// Level order runs coarsest to finest and defines a total order:
// atoms of level k appear only under atoms of level k-1.
type Schema struct {
	Name   string     `json:"name"`
	Levels []LevelDef `json:"levels"`

	splitters []*regexp.Regexp
}

// NewSchema validates the level list and compiles split rules.
// It fails with ErrConfiguration on an empty level list, duplicate level
// names, negative weights, a weight sum off 1.0, or an invalid pattern.
func NewSchema(name string, levels []LevelDef) (*Schema, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: schema %q has no levels", ErrConfiguration, name)
	}

	seen := make(map[string]bool, len(levels))
	sum := 0.0
	for i, lvl := range levels {
		if lvl.Name == "" {
			return nil, fmt.Errorf("%w: schema %q level %d has no name", ErrConfiguration, name, i)
		}
		if seen[lvl.Name] {
			return nil, fmt.Errorf("%w: schema %q has duplicate level %q", ErrConfiguration, name, lvl.Name)
		}
		seen[lvl.Name] = true
		if lvl.Weight < 0 {
			return nil, fmt.Errorf("%w: schema %q level %q has negative weight %g",
				ErrConfiguration, name, lvl.Name, lvl.Weight)
		}
		sum += lvl.Weight
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return nil, fmt.Errorf("%w: schema %q level weights sum to %g, want 1.0",
			ErrConfiguration, name, sum)
	}

	s := &Schema{
		Name:      name,
		Levels:    append([]LevelDef(nil), levels...),
		splitters: make([]*regexp.Regexp, len(levels)),
	}

	for i := range s.Levels {
		lvl := &s.Levels[i]
		if lvl.Rule == "" {
			lvl.Rule = RuleRegex
		}
		switch lvl.Rule {
		case RuleRunes:
			// No pattern to compile.
		case RuleLiteral:
			if lvl.Pattern == "" {
				return nil, fmt.Errorf("%w: schema %q level %q has empty literal delimiter",
					ErrConfiguration, name, lvl.Name)
			}
			s.splitters[i] = regexp.MustCompile(regexp.QuoteMeta(lvl.Pattern))
		case RuleRegex:
			re, err := regexp.Compile(lvl.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: schema %q level %q pattern: %v",
					ErrConfiguration, name, lvl.Name, err)
			}
			if re.MatchString("") && lvl.Pattern != "" {
				// Empty-width delimiters would loop; treat as misconfiguration.
				return nil, fmt.Errorf("%w: schema %q level %q pattern matches the empty string",
					ErrConfiguration, name, lvl.Name)
			}
			if lvl.Pattern == "" {
				s.splitters[i] = nil
			} else {
				s.splitters[i] = re
			}
		default:
			return nil, fmt.Errorf("%w: schema %q level %q has unknown rule kind %q",
				ErrConfiguration, name, lvl.Name, lvl.Rule)
		}
	}

	return s, nil
}

// Splitter returns the compiled delimiter expression for a level.
// Nil for RuleRunes levels and empty-pattern regex levels.
func (s *Schema) Splitter(level int) *regexp.Regexp {
	return s.splitters[level]
}

// Depth returns the number of levels.
func (s *Schema) Depth() int {
	return len(s.Levels)
}

// LeafLevel returns the index of the finest level.
func (s *Schema) LeafLevel() int {
	return len(s.Levels) - 1
}
