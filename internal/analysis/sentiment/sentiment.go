// Package sentiment provides lexicon-based sentiment analysis.
//
// Scoring is a weighted term lookup: the domain profile's lexicon is
// merged over a small built-in default, per-unit scores are normalized to
// [-1, 1] and classified with a neutral band around zero.
package sentiment

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
const ModuleName = "sentiment"

// neutralBand is the composite-score band classified as neutral.
const neutralBand = 0.05

// defaultPeakCount is how many emotional peaks each polarity reports.
const defaultPeakCount = 10

// defaultLexicon covers common valence terms when no profile is loaded.
var defaultLexicon = map[string]float64{
	"love": 3.0, "wonderful": 3.0, "great": 2.5, "good": 2.0, "hope": 1.5,
	"happy": 2.5, "joy": 3.0, "proud": 2.0, "calm": 1.0, "safe": 1.5,
	"beautiful": 2.5, "triumph": 3.0, "honor": 2.0, "brave": 2.0,

	"hate": -3.0, "terrible": -3.0, "bad": -2.0, "awful": -3.0,
	"fear": -2.0, "angry": -2.5, "sad": -2.0, "grief": -3.0,
	"death": -2.5, "pain": -2.5, "suffer": -3.0, "lost": -1.5,
	"war": -2.0, "wound": -2.5, "cry": -2.0, "desperate": -2.5,
}

// Ensure Module implements the interface.
var _ driven.AnalysisModule = (*Module)(nil)

// Module is the sentiment analysis module.
type Module struct{}

// New creates a sentiment module.
func New() *Module {
	return &Module{}
}

// Name returns the module key.
func (m *Module) Name() string {
	return ModuleName
}

// unitSentiment is the per-unit finding.
type unitSentiment struct {
	unit           textutil.Unit
	score          float64
	classification string
	matched        int
}

// Analyze scores every unit in the corpus.
//
// Config options:
//
//	peak_count (int): emotional peaks to report per polarity (default 10)
func (m *Module) Analyze(_ context.Context, corpus *domain.Corpus, profile *domain.Profile, config map[string]any) (*domain.AnalysisOutput, error) {
	peakCount := intOption(config, "peak_count", defaultPeakCount)
	lexicon := mergeLexicon(profile)

	units := textutil.Units(corpus)
	scored := make([]unitSentiment, 0, len(units))
	for _, u := range units {
		score, matched := scoreText(u.Text, lexicon)
		scored = append(scored, unitSentiment{
			unit:           u,
			score:          score,
			classification: classify(score),
			matched:        matched,
		})
	}

	sentences := make([]map[string]any, 0, len(scored))
	classCounts := map[string]int{}
	var scores []float64
	byGroup := map[string][]float64{}
	groupTitles := map[string]string{}

	for _, s := range scored {
		sentences = append(sentences, map[string]any{
			"sentence_id":     s.unit.ID,
			"sentence_number": s.unit.Ordinal,
			"theme_id":        s.unit.GroupID,
			"theme_title":     s.unit.GroupTitle,
			"text":            s.unit.Text,
			"composite_score": s.score,
			"classification":  s.classification,
			"matched_terms":   s.matched,
		})
		classCounts[s.classification]++
		scores = append(scores, s.score)
		byGroup[s.unit.GroupID] = append(byGroup[s.unit.GroupID], s.score)
		groupTitles[s.unit.GroupID] = s.unit.GroupTitle
	}

	themeStats := make(map[string]any, len(byGroup))
	for groupID, groupScores := range byGroup {
		themeStats[groupID] = map[string]any{
			"title":           groupTitles[groupID],
			"sentence_count":  len(groupScores),
			"mean_sentiment":  textutil.Mean(groupScores),
			"stdev_sentiment": textutil.Stdev(groupScores),
			"min_sentiment":   minOf(groupScores),
			"max_sentiment":   maxOf(groupScores),
		}
	}

	mean := textutil.Mean(scores)
	return &domain.AnalysisOutput{
		ModuleName: ModuleName,
		Data: map[string]any{
			"sentence_sentiments": sentences,
			"emotional_peaks":     peaks(scored, peakCount),
			"theme_statistics":    themeStats,
			"overall_statistics": map[string]any{
				"total_sentences":       len(scored),
				"classification_counts": classCounts,
				"mean_composite":        mean,
			},
		},
		Summary: map[string]float64{
			"overall":         mean,
			"positive_share":  share(classCounts["positive"], len(scored)),
			"negative_share":  share(classCounts["negative"], len(scored)),
			"total_sentences": float64(len(scored)),
		},
		Metadata: map[string]any{
			"lexicon_terms":  len(lexicon),
			"profile_loaded": profile != nil,
		},
	}, nil
}

// mergeLexicon lays the profile lexicon over the built-in defaults.
func mergeLexicon(profile *domain.Profile) map[string]float64 {
	merged := make(map[string]float64, len(defaultLexicon))
	for term, score := range defaultLexicon {
		merged[term] = score
	}
	if profile != nil {
		for term, score := range profile.Lexicon {
			merged[strings.ToLower(term)] = score
		}
	}
	return merged
}

// scoreText sums lexicon hits and normalizes by the score bound and hit
// count, yielding a composite in [-1, 1].
func scoreText(text string, lexicon map[string]float64) (float64, int) {
	tokens := textutil.Tokenize(text)
	sum := 0.0
	matched := 0
	for _, tok := range tokens {
		if score, ok := lexicon[tok]; ok {
			sum += score
			matched++
		}
	}
	if matched == 0 {
		return 0, 0
	}
	composite := sum / (domain.LexiconScoreMax * float64(matched))
	return math.Max(-1, math.Min(1, composite)), matched
}

func classify(score float64) string {
	switch {
	case score >= neutralBand:
		return "positive"
	case score <= -neutralBand:
		return "negative"
	default:
		return "neutral"
	}
}

// peaks returns the n most negative and most positive units.
func peaks(scored []unitSentiment, n int) map[string]any {
	sorted := append([]unitSentiment(nil), scored...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].score < sorted[j].score
	})

	toMaps := func(items []unitSentiment) []map[string]any {
		out := make([]map[string]any, 0, len(items))
		for _, s := range items {
			out = append(out, map[string]any{
				"sentence_id":     s.unit.ID,
				"text":            s.unit.Text,
				"composite_score": s.score,
			})
		}
		return out
	}

	if n > len(sorted) {
		n = len(sorted)
	}
	mostNegative := sorted[:n]

	positive := make([]unitSentiment, n)
	for i := 0; i < n; i++ {
		positive[i] = sorted[len(sorted)-1-i]
	}

	return map[string]any{
		"most_negative": toMaps(mostNegative),
		"most_positive": toMaps(positive),
	}
}

func intOption(config map[string]any, key string, fallback int) int {
	if config == nil {
		return fallback
	}
	switch v := config[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func share(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
