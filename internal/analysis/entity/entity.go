// Package entity provides pattern-based named entity recognition.
//
// Patterns come from the active domain profile; a small built-in set
// covers the common narrative entity types when no profile is loaded.
package entity

import (
	"context"
	"regexp"
	"sort"

	"github.com/lexframe-labs/lexframe-cli/internal/analysis/textutil"
	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
)

// ModuleName is the registry key.
const ModuleName = "entity"

// topEntityCount caps the ranked mention list per entity type.
const topEntityCount = 10

// defaultPatterns apply when the profile declares no entity rules.
// Person names stay case-sensitive; the rest match case-insensitively.
var defaultPatterns = map[string]*regexp.Regexp{
	"PERSON":   regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`),
	"LOCATION": regexp.MustCompile(`(?i)\b(?:city|town|village|mountain|river|valley|forest|island|harbor|castle)\b`),
	"TEMPORAL": regexp.MustCompile(`(?i)\b(?:morning|evening|night|day|hour|minute|dawn|dusk|midnight|noon)\b`),
	"NUMBER":   regexp.MustCompile(`\b\d+(?:[.,]\d+)*\b`),
}

var _ driven.AnalysisModule = (*Module)(nil)

// Module is the entity recognition module.
type Module struct{}

// New creates an entity module.
func New() *Module {
	return &Module{}
}

// Name returns the module key.
func (m *Module) Name() string {
	return ModuleName
}

// Analyze extracts entity mentions from every unit and aggregates
// frequency statistics per entity type.
func (m *Module) Analyze(_ context.Context, corpus *domain.Corpus, profile *domain.Profile, _ map[string]any) (*domain.AnalysisOutput, error) {
	patterns := loadPatterns(profile)

	units := textutil.Units(corpus)
	sentences := make([]map[string]any, 0, len(units))

	// mention frequencies per type
	stats := map[string]map[string]int{}

	for _, u := range units {
		found := extract(u.Text, patterns)
		if len(found) > 0 {
			sentences = append(sentences, map[string]any{
				"sentence_id": u.ID,
				"theme_id":    u.GroupID,
				"text":        u.Text,
				"entities":    found,
			})
		}
		for entityType, mentions := range found {
			if stats[entityType] == nil {
				stats[entityType] = map[string]int{}
			}
			for _, mention := range mentions {
				stats[entityType][mention]++
			}
		}
	}

	total := 0
	byType := map[string]any{}
	for entityType, counts := range stats {
		typeTotal := 0
		for _, c := range counts {
			typeTotal += c
		}
		total += typeTotal
		byType[entityType] = map[string]any{
			"total":  typeTotal,
			"unique": len(counts),
			"top":    topMentions(counts, topEntityCount),
		}
	}

	return &domain.AnalysisOutput{
		ModuleName: ModuleName,
		Data: map[string]any{
			"sentence_entities": sentences,
			"entity_statistics": map[string]any{
				"total_entities": total,
				"by_type":        byType,
			},
		},
		Summary: map[string]float64{
			"overall":        float64(total),
			"total_entities": float64(total),
			"entity_types":   float64(len(stats)),
		},
		Metadata: map[string]any{
			"pattern_count":  len(patterns),
			"profile_loaded": profile != nil && len(profile.Patterns) > 0,
		},
	}, nil
}

// loadPatterns prefers the profile's rules over the built-in defaults.
func loadPatterns(profile *domain.Profile) map[string]*regexp.Regexp {
	if profile != nil && len(profile.Patterns) > 0 {
		return profile.CompiledPatterns()
	}
	return defaultPatterns
}

func extract(text string, patterns map[string]*regexp.Regexp) map[string][]string {
	found := map[string][]string{}
	for entityType, re := range patterns {
		matches := re.FindAllString(text, -1)
		if len(matches) > 0 {
			found[entityType] = matches
		}
	}
	return found
}

// topMentions ranks mentions by count, then alphabetically for stable
// output, keeping the first n.
func topMentions(counts map[string]int, n int) []map[string]any {
	type mention struct {
		text  string
		count int
	}
	ranked := make([]mention, 0, len(counts))
	for text, count := range counts {
		ranked = append(ranked, mention{text, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].text < ranked[j].text
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]map[string]any, 0, n)
	for _, m := range ranked[:n] {
		out = append(out, map[string]any{"text": m.text, "count": m.count})
	}
	return out
}
