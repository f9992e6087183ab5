// Package semantic measures similarity between themes with TF-IDF
// weighted cosine similarity and builds a term co-occurrence network.
package semantic

import (
	"context"
	"math"
	"sort"

	"github.com/lexframe-labs/lexframe-cli/internal/analysis/textutil"
	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
)

// ModuleName is the registry key.
const ModuleName = "semantic"

// defaultSimilarityThreshold is the minimum cosine similarity for a
// theme pair to appear as an edge in the similarity network.
const defaultSimilarityThreshold = 0.3

// defaultTopTerms is how many top TF-IDF terms each theme reports.
const defaultTopTerms = 10

var _ driven.AnalysisModule = (*Module)(nil)

// Module is the semantic analysis module.
type Module struct{}

// New creates a semantic module.
func New() *Module {
	return &Module{}
}

// Name returns the module key.
func (m *Module) Name() string {
	return ModuleName
}

// Analyze builds TF-IDF vectors per theme, scores pairwise cosine
// similarity, and counts term co-occurrence within units.
//
// Config options:
//
//	similarity_threshold (float): minimum similarity for network edges (default 0.3)
//	top_terms (int): top TF-IDF terms reported per theme (default 10)
func (m *Module) Analyze(_ context.Context, corpus *domain.Corpus, _ *domain.Profile, config map[string]any) (*domain.AnalysisOutput, error) {
	threshold := floatOption(config, "similarity_threshold", defaultSimilarityThreshold)
	topTerms := intOption(config, "top_terms", defaultTopTerms)

	groups := textutil.Groups(corpus)
	vectors, vocabulary := tfidfVectors(groups)

	nodes := make([]map[string]any, 0, len(groups))
	for i, g := range groups {
		nodes = append(nodes, map[string]any{
			"theme_id":  g.ID,
			"title":     g.GroupTitle,
			"top_terms": topWeighted(vectors[i], topTerms),
		})
	}

	var edges []map[string]any
	var similarities []float64
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			sim := cosine(vectors[i], vectors[j])
			similarities = append(similarities, sim)
			if sim > threshold {
				edges = append(edges, map[string]any{
					"source":     groups[i].ID,
					"target":     groups[j].ID,
					"similarity": sim,
				})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i]["similarity"].(float64) > edges[j]["similarity"].(float64)
	})

	return &domain.AnalysisOutput{
		ModuleName: ModuleName,
		Data: map[string]any{
			"similarity_network": map[string]any{
				"nodes":                nodes,
				"edges":                edges,
				"similarity_threshold": threshold,
			},
			"co_occurrence": coOccurrence(corpus, topTerms),
		},
		Summary: map[string]float64{
			"overall":         textutil.Mean(similarities),
			"theme_count":     float64(len(groups)),
			"edge_count":      float64(len(edges)),
			"vocabulary_size": float64(len(vocabulary)),
		},
	}, nil
}

// tfidfVectors computes one sparse TF-IDF vector per group over the
// shared content-token vocabulary.
func tfidfVectors(groups []textutil.Unit) ([]map[string]float64, map[string]int) {
	termCounts := make([]map[string]int, len(groups))
	docFreq := map[string]int{}

	for i, g := range groups {
		counts := map[string]int{}
		for _, tok := range textutil.ContentTokens(g.Text) {
			counts[tok]++
		}
		termCounts[i] = counts
		for term := range counts {
			docFreq[term]++
		}
	}

	n := float64(len(groups))
	vectors := make([]map[string]float64, len(groups))
	for i, counts := range termCounts {
		total := 0
		for _, c := range counts {
			total += c
		}
		vec := make(map[string]float64, len(counts))
		for term, c := range counts {
			tf := float64(c) / float64(max(total, 1))
			idf := math.Log((1+n)/(1+float64(docFreq[term]))) + 1
			vec[term] = tf * idf
		}
		vectors[i] = vec
	}
	return vectors, docFreq
}

// cosine computes cosine similarity between two sparse vectors.
func cosine(a, b map[string]float64) float64 {
	dot := 0.0
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (norm(a) * norm(b))
}

func norm(v map[string]float64) float64 {
	sum := 0.0
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// topWeighted returns the n heaviest terms of a vector, ties broken
// alphabetically for stable output.
func topWeighted(vec map[string]float64, n int) []map[string]any {
	terms := make([]string, 0, len(vec))
	for term := range vec {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if vec[terms[i]] != vec[terms[j]] {
			return vec[terms[i]] > vec[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if n > len(terms) {
		n = len(terms)
	}
	out := make([]map[string]any, 0, n)
	for _, term := range terms[:n] {
		out = append(out, map[string]any{"term": term, "weight": vec[term]})
	}
	return out
}

// coOccurrence counts unordered term pairs appearing in the same unit
// and keeps the strongest pairs.
func coOccurrence(corpus *domain.Corpus, limit int) []map[string]any {
	pairCounts := map[[2]string]int{}
	for _, u := range textutil.Units(corpus) {
		seen := map[string]bool{}
		for _, tok := range textutil.ContentTokens(u.Text) {
			seen[tok] = true
		}
		terms := make([]string, 0, len(seen))
		for term := range seen {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for i := 0; i < len(terms); i++ {
			for j := i + 1; j < len(terms); j++ {
				pairCounts[[2]string{terms[i], terms[j]}]++
			}
		}
	}

	pairs := make([][2]string, 0, len(pairCounts))
	for pair, count := range pairCounts {
		if count > 1 {
			pairs = append(pairs, pair)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairCounts[pairs[i]] != pairCounts[pairs[j]] {
			return pairCounts[pairs[i]] > pairCounts[pairs[j]]
		}
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	if limit > len(pairs) {
		limit = len(pairs)
	}
	out := make([]map[string]any, 0, limit)
	for _, pair := range pairs[:limit] {
		out = append(out, map[string]any{
			"source": pair[0],
			"target": pair[1],
			"count":  pairCounts[pair],
		})
	}
	return out
}

func floatOption(config map[string]any, key string, fallback float64) float64 {
	if config == nil {
		return fallback
	}
	switch v := config[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
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
