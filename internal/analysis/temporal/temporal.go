// Package temporal detects verb tense, temporal markers, and narrative
// shifts (flashbacks, flashforwards) across a corpus, and emits the
// flow data needed to render a theme-to-chronology sankey diagram.
package temporal

import (
	"context"
	"strings"

	"github.com/lexframe-labs/lexframe-cli/internal/analysis/textutil"
	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
)

// ModuleName is the registry key.
const ModuleName = "temporal"

// tenseLabels in sankey bucket order.
var tenseLabels = []string{"past", "present", "future", "ambiguous"}

var temporalAdverbs = []string{
	"then", "now", "later", "before", "after", "once", "when",
	"while", "during", "until", "since", "ago", "soon", "already",
	"eventually", "finally", "previously", "formerly", "currently",
}

var pastIndicators = []string{"was", "were", "had", "did", "went", "saw", "told", "asked"}

var presentIndicators = []string{"is", "are", "am", "do", "does", "see", "tell", "ask"}

var futureIndicators = []string{"will", "shall", "going to", "would", "could", "might"}

var flashbackSignals = []string{
	"remember", "recalled", "looking back", "once upon", "used to",
	"in the past", "back then", "years ago",
}

var flashforwardSignals = []string{
	"years later", "in the future", "someday", "one day",
	"would one day", "was yet to",
}

var _ driven.AnalysisModule = (*Module)(nil)

// Module is the temporal analysis module.
type Module struct{}

// New creates a temporal module.
func New() *Module {
	return &Module{}
}

// Name returns the module key.
func (m *Module) Name() string {
	return ModuleName
}

// Analyze classifies every unit's tense and narrative type.
//
// Config options:
//
//	include_sankey (bool): emit sankey flow data (default true)
func (m *Module) Analyze(_ context.Context, corpus *domain.Corpus, _ *domain.Profile, config map[string]any) (*domain.AnalysisOutput, error) {
	includeSankey := boolOption(config, "include_sankey", true)

	units := textutil.Units(corpus)
	sentences := make([]map[string]any, 0, len(units))
	tenseCounts := map[string]int{}
	flashbacks, flashforwards, linear := 0, 0, 0

	// tense distribution per group, for the sankey links
	distribution := map[string]map[string]int{}
	groupTitles := map[string]string{}
	var groupOrder []string

	for _, u := range units {
		lower := strings.ToLower(u.Text)
		tense := detectTense(lower)
		markers := extractMarkers(lower)
		isFlashback := containsAny(lower, flashbackSignals)
		isFlashforward := containsAny(lower, flashforwardSignals)

		narrative := "linear"
		switch {
		case isFlashback:
			narrative = "flashback"
			flashbacks++
		case isFlashforward:
			narrative = "flashforward"
			flashforwards++
		default:
			linear++
		}
		tenseCounts[tense]++

		if _, ok := distribution[u.GroupID]; !ok {
			distribution[u.GroupID] = map[string]int{}
			groupTitles[u.GroupID] = u.GroupTitle
			groupOrder = append(groupOrder, u.GroupID)
		}
		distribution[u.GroupID][tense]++

		sentences = append(sentences, map[string]any{
			"sentence_id":      u.ID,
			"theme_id":         u.GroupID,
			"theme_title":      u.GroupTitle,
			"text":             u.Text,
			"tense":            tense,
			"temporal_markers": markers,
			"is_flashback":     isFlashback,
			"is_flashforward":  isFlashforward,
			"narrative_type":   narrative,
		})
	}

	data := map[string]any{
		"sentence_analysis":        sentences,
		"theme_tense_distribution": distribution,
		"overall_statistics": map[string]any{
			"total_sentences":    len(sentences),
			"tense_counts":       tenseCounts,
			"flashback_count":    flashbacks,
			"flashforward_count": flashforwards,
			"linear_count":       linear,
		},
	}
	if includeSankey {
		data["sankey_data"] = sankeyData(groupOrder, groupTitles, distribution)
	}

	return &domain.AnalysisOutput{
		ModuleName: ModuleName,
		Data:       data,
		Summary: map[string]float64{
			"overall":            linearShare(linear, len(sentences)),
			"total_sentences":    float64(len(sentences)),
			"flashback_count":    float64(flashbacks),
			"flashforward_count": float64(flashforwards),
		},
	}, nil
}

// detectTense scans for tense indicator keywords and returns the
// dominant tense, or "ambiguous" when nothing matches.
func detectTense(lower string) string {
	counts := map[string]int{
		"past":    countHits(lower, pastIndicators),
		"present": countHits(lower, presentIndicators),
		"future":  countHits(lower, futureIndicators),
	}
	best, bestCount := "ambiguous", 0
	for _, label := range tenseLabels[:3] {
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best
}

func extractMarkers(lower string) []string {
	tokens := map[string]bool{}
	for _, tok := range textutil.Tokenize(lower) {
		tokens[tok] = true
	}
	var markers []string
	for _, adverb := range temporalAdverbs {
		if tokens[adverb] {
			markers = append(markers, adverb)
		}
	}
	return markers
}

// sankeyData links each theme node to the chronology buckets its
// sentences fall in.
func sankeyData(groupOrder []string, titles map[string]string, distribution map[string]map[string]int) map[string]any {
	var nodes []map[string]any
	var links []map[string]any
	nodeIndex := map[string]int{}

	for _, groupID := range groupOrder {
		nodeIndex[groupID] = len(nodes)
		nodes = append(nodes, map[string]any{
			"id":    groupID,
			"name":  titles[groupID],
			"group": "theme",
		})
	}
	for _, label := range tenseLabels {
		id := "CHRONO:" + label
		nodeIndex[id] = len(nodes)
		nodes = append(nodes, map[string]any{
			"id":    id,
			"name":  "Chronology - " + label,
			"group": "chronology",
		})
	}
	for _, groupID := range groupOrder {
		for _, label := range tenseLabels {
			count := distribution[groupID][label]
			if count == 0 {
				continue
			}
			links = append(links, map[string]any{
				"source": nodeIndex[groupID],
				"target": nodeIndex["CHRONO:"+label],
				"value":  count,
				"type":   "tense_flow",
			})
		}
	}
	return map[string]any{"nodes": nodes, "links": links}
}

// countHits counts single-word indicators as whole tokens and phrases
// as substrings.
func countHits(lower string, indicators []string) int {
	var tokens map[string]bool
	count := 0
	for _, ind := range indicators {
		if strings.ContainsRune(ind, ' ') {
			if strings.Contains(lower, ind) {
				count++
			}
			continue
		}
		if tokens == nil {
			tokens = map[string]bool{}
			for _, tok := range textutil.Tokenize(lower) {
				tokens[tok] = true
			}
		}
		if tokens[ind] {
			count++
		}
	}
	return count
}

func containsAny(lower string, signals []string) bool {
	for _, s := range signals {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func linearShare(linear, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(linear) / float64(total)
}

func boolOption(config map[string]any, key string, fallback bool) bool {
	if config == nil {
		return fallback
	}
	if v, ok := config[key].(bool); ok {
		return v
	}
	return fallback
}
