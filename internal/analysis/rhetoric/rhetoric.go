// Package rhetoric scores argumentative quality with heuristic marker
// matching. The scores measure marker density, not validated writing
// quality.
package rhetoric

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/lexframe-labs/lexframe-cli/internal/analysis/textutil"
	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
)

// ModuleName is the registry key.
const ModuleName = "rhetoric"

// markerCategory is one family of rhetorical signals.
type markerCategory struct {
	name string
	// positive categories raise the overall score, weaknesses lower it
	positive bool
	// density of markers per unit that maps to a score of 100
	saturation float64
	markers    []string
}

var categories = []markerCategory{
	{
		name:       "evidence",
		positive:   true,
		saturation: 0.5,
		markers: []string{
			"for example", "for instance", "according to", "research shows",
			"studies show", "data", "statistics", "evidence", "demonstrated",
			"measured", "observed", "percent", "survey",
		},
	},
	{
		name:       "emotional",
		positive:   true,
		saturation: 0.5,
		markers: []string{
			"imagine", "feel", "heart", "fear", "hope", "dream", "suffer",
			"love", "devastating", "inspiring", "tragic", "remarkable",
			"unforgettable", "desperate",
		},
	},
	{
		name:       "authority",
		positive:   true,
		saturation: 0.4,
		markers: []string{
			"expert", "professor", "doctor", "scientist", "authority",
			"decades of", "experience", "proven", "certified", "established",
			"renowned", "respected",
		},
	},
	{
		name:       "weakness",
		positive:   false,
		saturation: 0.4,
		markers: []string{
			"maybe", "perhaps", "might", "possibly", "i think", "i guess",
			"sort of", "kind of", "probably", "somewhat", "arguably",
			"it seems", "apparently",
		},
	},
	{
		name:       "transition",
		positive:   true,
		saturation: 0.6,
		markers: []string{
			"however", "therefore", "furthermore", "moreover", "consequently",
			"in addition", "on the other hand", "as a result", "in contrast",
			"first", "second", "finally", "in conclusion", "thus",
		},
	},
}

var _ driven.AnalysisModule = (*Module)(nil)

// Module is the rhetoric analysis module.
type Module struct{}

// New creates a rhetoric module.
func New() *Module {
	return &Module{}
}

// Name returns the module key.
func (m *Module) Name() string {
	return ModuleName
}

// Analyze scores each marker category 0-100 by marker density and
// combines them into an overall score where weakness markers subtract.
func (m *Module) Analyze(_ context.Context, corpus *domain.Corpus, _ *domain.Profile, _ map[string]any) (*domain.AnalysisOutput, error) {
	units := textutil.Units(corpus)
	lowered := make([]string, len(units))
	for i, u := range units {
		lowered[i] = strings.ToLower(u.Text)
	}

	categoryResults := map[string]any{}
	summary := map[string]float64{}
	var positiveScores []float64
	weaknessScore := 0.0

	for _, cat := range categories {
		hits := map[string]int{}
		hitUnits := 0
		total := 0
		for _, text := range lowered {
			matched := false
			for _, marker := range cat.markers {
				n := strings.Count(text, marker)
				if n > 0 {
					hits[marker] += n
					total += n
					matched = true
				}
			}
			if matched {
				hitUnits++
			}
		}

		score := densityScore(total, len(units), cat.saturation)
		if cat.positive {
			positiveScores = append(positiveScores, score)
		} else {
			weaknessScore = score
		}

		categoryResults[cat.name] = map[string]any{
			"score":          score,
			"total_markers":  total,
			"sentences_hit":  hitUnits,
			"marker_counts":  sortedHits(hits),
			"interpretation": interpret(cat.name, score),
		}
		summary[cat.name+"_score"] = score
	}

	overall := textutil.Mean(positiveScores) * (1 - weaknessScore/200)
	overall = math.Max(0, math.Min(100, overall))

	summary["overall"] = overall
	summary["total_sentences"] = float64(len(units))

	return &domain.AnalysisOutput{
		ModuleName: ModuleName,
		Data: map[string]any{
			"categories":      categoryResults,
			"overall_score":   overall,
			"recommendations": recommendations(summary),
			"quick_wins":      quickWins(summary),
		},
		Summary: summary,
	}, nil
}

// densityScore maps markers-per-unit onto [0, 100], saturating at the
// category's density ceiling.
func densityScore(total, unitCount int, saturation float64) float64 {
	if unitCount == 0 {
		return 0
	}
	density := float64(total) / float64(unitCount)
	score := density / saturation * 100
	return math.Min(100, score)
}

func interpret(category string, score float64) string {
	band := "low"
	switch {
	case score >= 70:
		band = "high"
	case score >= 35:
		band = "moderate"
	}
	if category == "weakness" {
		switch band {
		case "high":
			return "hedging language dominates the text"
		case "moderate":
			return "noticeable hedging language"
		default:
			return "assertive, little hedging"
		}
	}
	return band + " " + category + " marker density"
}

// recommendations flags the weakest positive categories and heavy
// hedging.
func recommendations(summary map[string]float64) []string {
	var recs []string
	for _, cat := range categories {
		score := summary[cat.name+"_score"]
		if cat.positive && score < 20 {
			recs = append(recs, "add more "+cat.name+" markers to strengthen the argument")
		}
		if !cat.positive && score > 50 {
			recs = append(recs, "reduce hedging language to sound more assertive")
		}
	}
	return recs
}

// maxQuickWins caps the ranked quick-win list.
const maxQuickWins = 3

// quickWinTemplate describes the revision move for one category.
type quickWinTemplate struct {
	title  string
	action string
	impact string
}

var quickWinTemplates = map[string]quickWinTemplate{
	"evidence": {
		title:  "Add supporting evidence",
		action: "cite a statistic, study, or concrete example where claims stand alone",
		impact: "grounds the argument in verifiable facts",
	},
	"emotional": {
		title:  "Raise the emotional stakes",
		action: "show how the subject affects people, not just what happened",
		impact: "gives readers a reason to care",
	},
	"authority": {
		title:  "Borrow credibility",
		action: "reference an expert, practitioner, or first-hand experience",
		impact: "signals the claims can be trusted",
	},
	"transition": {
		title:  "Signpost the argument",
		action: "connect paragraphs with markers such as \"however\" or \"as a result\"",
		impact: "makes the reasoning easy to follow",
	},
	"weakness": {
		title:  "Cut the hedging",
		action: "replace \"maybe\" and \"I think\" with direct statements",
		impact: "a confident voice carries the argument",
	},
}

// quickWins ranks the top revision moves: heavy hedging first (the
// cheapest single fix), then the positive categories with the lowest
// scores. Capped at three entries.
func quickWins(summary map[string]float64) []map[string]any {
	type candidate struct {
		category string
		score    float64
	}
	var cands []candidate
	if summary["weakness_score"] > 50 {
		cands = append(cands, candidate{"weakness", summary["weakness_score"]})
	}
	var low []candidate
	for _, cat := range categories {
		if cat.positive && summary[cat.name+"_score"] < 60 {
			low = append(low, candidate{cat.name, summary[cat.name+"_score"]})
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].score < low[j].score })
	cands = append(cands, low...)
	if len(cands) > maxQuickWins {
		cands = cands[:maxQuickWins]
	}

	wins := make([]map[string]any, 0, len(cands))
	for i, c := range cands {
		tpl := quickWinTemplates[c.category]
		wins = append(wins, map[string]any{
			"rank":     i + 1,
			"category": c.category,
			"title":    tpl.title,
			"action":   tpl.action,
			"impact":   tpl.impact,
		})
	}
	return wins
}

func sortedHits(hits map[string]int) []map[string]any {
	keys := make([]string, 0, len(hits))
	for k := range hits {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if hits[keys[i]] != hits[keys[j]] {
			return hits[keys[i]] > hits[keys[j]]
		}
		return keys[i] < keys[j]
	})
	out := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, map[string]any{"marker": k, "count": hits[k]})
	}
	return out
}
