package domain

import (
	"fmt"
	"regexp"
)

// Lexicon score bounds. Scores outside this range are rejected at load time.
const (
	LexiconScoreMin = -5.0
	LexiconScoreMax = 5.0
)

// EntityPattern is one named entity-detection rule.
type EntityPattern struct {
	// Label is the entity-type tag (e.g. "PERSON", "LOCATION").
	Label string `json:"label"`

	// Pattern is the regular expression matching entity mentions.
	Pattern string `json:"pattern"`
}

// Profile is a named domain bundle: a sentiment lexicon plus entity
// patterns. Profiles are pure data loaded from declarative files, frozen
// after construction and shared read-only across analysis modules.
type Profile struct {
	// Name identifies the profile in the registry.
	Name string `json:"name"`

	// Description is a short human-readable summary.
	Description string `json:"description,omitempty"`

	// Lexicon maps terms to sentiment scores in [LexiconScoreMin, LexiconScoreMax].
	Lexicon map[string]float64 `json:"lexicon,omitempty"`

	// Patterns lists entity-detection rules.
	Patterns []EntityPattern `json:"patterns,omitempty"`
}

// NewProfile validates and constructs a profile.
// Lexicon scores must be within bounds and every pattern must compile;
// violations fail with ErrConfiguration.
func NewProfile(name, description string, lexicon map[string]float64, patterns []EntityPattern) (*Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: profile has no name", ErrConfiguration)
	}
	for term, score := range lexicon {
		if score < LexiconScoreMin || score > LexiconScoreMax {
			return nil, fmt.Errorf("%w: profile %q lexicon term %q score %g outside [%g, %g]",
				ErrConfiguration, name, term, score, LexiconScoreMin, LexiconScoreMax)
		}
	}
	seen := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		if p.Label == "" {
			return nil, fmt.Errorf("%w: profile %q has a pattern without a label", ErrConfiguration, name)
		}
		if seen[p.Label] {
			return nil, fmt.Errorf("%w: profile %q has duplicate pattern label %q",
				ErrConfiguration, name, p.Label)
		}
		seen[p.Label] = true
		if _, err := regexp.Compile(p.Pattern); err != nil {
			return nil, fmt.Errorf("%w: profile %q pattern %q: %v",
				ErrConfiguration, name, p.Label, err)
		}
	}

	lex := make(map[string]float64, len(lexicon))
	for term, score := range lexicon {
		lex[term] = score
	}
	return &Profile{
		Name:        name,
		Description: description,
		Lexicon:     lex,
		Patterns:    append([]EntityPattern(nil), patterns...),
	}, nil
}

// CompiledPatterns compiles the profile's entity rules, case-insensitively.
// Patterns were validated at construction, so compilation cannot fail.
func (p *Profile) CompiledPatterns() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(p.Patterns))
	for _, ep := range p.Patterns {
		out[ep.Label] = regexp.MustCompile("(?i)" + ep.Pattern)
	}
	return out
}
