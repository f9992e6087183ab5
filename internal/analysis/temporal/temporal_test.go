package temporal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexframe-labs/lexframe-cli/internal/atomizer"
	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/naming"
)

func buildCorpus(t *testing.T, text string) *domain.Corpus {
	t.Helper()
	schema, err := domain.NewSchema("prose", []domain.LevelDef{
		{Name: "theme", Pattern: `\r?\n(?:[ \t]*\r?\n)+`, Weight: 0.6},
		{Name: "sentence", Pattern: `[.!?]+["')\]]*\s+`, Weight: 0.4},
	})
	require.NoError(t, err)
	corpus, err := atomizer.BuildCorpus("corpus", schema, naming.NewCounter(),
		[]domain.Document{{Title: "doc", Text: text}})
	require.NoError(t, err)
	return corpus
}

func analyze(t *testing.T, text string, config map[string]any) *domain.AnalysisOutput {
	t.Helper()
	out, err := New().Analyze(context.Background(), buildCorpus(t, text), nil, config)
	require.NoError(t, err)
	return out
}

func TestAnalyze_TenseDetection(t *testing.T) {
	out := analyze(t,
		"She was tired and went home. The house is quiet now. They will leave soon. Rain over the hills.", nil)

	sentences := out.Data["sentence_analysis"].([]map[string]any)
	require.Len(t, sentences, 4)
	assert.Equal(t, "past", sentences[0]["tense"])
	assert.Equal(t, "present", sentences[1]["tense"])
	assert.Equal(t, "future", sentences[2]["tense"])
	assert.Equal(t, "ambiguous", sentences[3]["tense"])
}

func TestAnalyze_TemporalMarkers(t *testing.T) {
	out := analyze(t, "Now and then she waited, but soon it was over.", nil)

	sentences := out.Data["sentence_analysis"].([]map[string]any)
	require.Len(t, sentences, 1)
	assert.Equal(t, []string{"then", "now", "soon"}, sentences[0]["temporal_markers"],
		"markers come back in adverb-list order")
}

func TestAnalyze_NarrativeShifts(t *testing.T) {
	out := analyze(t,
		"Years ago the town was small. He walks to the well. Someday the river will dry up.", nil)

	sentences := out.Data["sentence_analysis"].([]map[string]any)
	require.Len(t, sentences, 3)
	assert.Equal(t, "flashback", sentences[0]["narrative_type"])
	assert.Equal(t, "linear", sentences[1]["narrative_type"])
	assert.Equal(t, "flashforward", sentences[2]["narrative_type"])

	assert.Equal(t, 1.0, out.Summary["flashback_count"])
	assert.Equal(t, 1.0, out.Summary["flashforward_count"])
	assert.InDelta(t, 1.0/3, out.Summary["overall"], 1e-9)
}

func TestAnalyze_SankeyData(t *testing.T) {
	out := analyze(t, "She was there. She was gone.\n\nHe is here.", nil)

	sankey := out.Data["sankey_data"].(map[string]any)
	nodes := sankey["nodes"].([]map[string]any)
	links := sankey["links"].([]map[string]any)

	// 2 theme nodes + 4 chronology buckets
	require.Len(t, nodes, 6)
	assert.Equal(t, "theme", nodes[0]["group"])
	assert.Equal(t, "CHRONO:past", nodes[2]["id"])

	require.Len(t, links, 2)
	assert.Equal(t, 0, links[0]["source"])
	assert.Equal(t, 2, links[0]["target"], "first theme flows to the past bucket")
	assert.Equal(t, 2, links[0]["value"])
	assert.Equal(t, 1, links[1]["source"])
	assert.Equal(t, 3, links[1]["target"], "second theme flows to the present bucket")
}

func TestAnalyze_SankeyDisabled(t *testing.T) {
	out := analyze(t, "She was there.", map[string]any{"include_sankey": false})
	_, ok := out.Data["sankey_data"]
	assert.False(t, ok)
}

func TestAnalyze_EmptyCorpus(t *testing.T) {
	out := analyze(t, "", nil)
	assert.Equal(t, 0.0, out.Summary["overall"])
	assert.Equal(t, 0.0, out.Summary["total_sentences"])
}
