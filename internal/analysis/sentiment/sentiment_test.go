package sentiment

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

func TestAnalyze_Classification(t *testing.T) {
	corpus := buildCorpus(t,
		"I love this wonderful day. The war brought grief and pain. The table stands there.")

	out, err := New().Analyze(context.Background(), corpus, nil, nil)
	require.NoError(t, err)
	require.Equal(t, ModuleName, out.ModuleName)

	sentences := out.Data["sentence_sentiments"].([]map[string]any)
	require.Len(t, sentences, 3)

	assert.Equal(t, "positive", sentences[0]["classification"])
	assert.InDelta(t, 0.6, sentences[0]["composite_score"].(float64), 1e-9)
	assert.Equal(t, 2, sentences[0]["matched_terms"])

	assert.Equal(t, "negative", sentences[1]["classification"])
	assert.InDelta(t, -0.5, sentences[1]["composite_score"].(float64), 1e-9)

	assert.Equal(t, "neutral", sentences[2]["classification"])
	assert.Equal(t, 0, sentences[2]["matched_terms"])

	assert.InDelta(t, (0.6-0.5)/3, out.Summary["overall"], 1e-9)
	assert.InDelta(t, 1.0/3, out.Summary["positive_share"], 1e-9)
	assert.InDelta(t, 1.0/3, out.Summary["negative_share"], 1e-9)
	assert.Equal(t, 3.0, out.Summary["total_sentences"])
}

func TestAnalyze_EmotionalPeaks(t *testing.T) {
	corpus := buildCorpus(t,
		"I love this wonderful day. The war brought grief and pain. The table stands there.")

	out, err := New().Analyze(context.Background(), corpus, nil, map[string]any{"peak_count": 1})
	require.NoError(t, err)

	peaks := out.Data["emotional_peaks"].(map[string]any)
	neg := peaks["most_negative"].([]map[string]any)
	pos := peaks["most_positive"].([]map[string]any)
	require.Len(t, neg, 1)
	require.Len(t, pos, 1)
	assert.Equal(t, "The war brought grief and pain.", neg[0]["text"])
	assert.Equal(t, "I love this wonderful day.", pos[0]["text"])
}

func TestAnalyze_ProfileOverridesLexicon(t *testing.T) {
	corpus := buildCorpus(t, "The table stands there.")
	profile, err := domain.NewProfile("furniture", "", map[string]float64{"Table": 4.0}, nil)
	require.NoError(t, err)

	out, err := New().Analyze(context.Background(), corpus, profile, nil)
	require.NoError(t, err)

	sentences := out.Data["sentence_sentiments"].([]map[string]any)
	require.Len(t, sentences, 1)
	assert.Equal(t, "positive", sentences[0]["classification"])
	assert.InDelta(t, 0.8, sentences[0]["composite_score"].(float64), 1e-9)
	assert.Equal(t, true, out.Metadata["profile_loaded"])
}

func TestAnalyze_ThemeStatistics(t *testing.T) {
	corpus := buildCorpus(t, "Joy and hope. Fear and pain.\n\nNothing here.")

	out, err := New().Analyze(context.Background(), corpus, nil, nil)
	require.NoError(t, err)

	stats := out.Data["theme_statistics"].(map[string]any)
	require.Len(t, stats, 2)
	first := stats["T001"].(map[string]any)
	assert.Equal(t, 2, first["sentence_count"])
	// joy(3)+hope(1.5) over 2 matches = 0.45; fear(-2)+pain(-2.5) over 2 = -0.45
	assert.InDelta(t, 0.0, first["mean_sentiment"].(float64), 1e-9)
	assert.InDelta(t, -0.45, first["min_sentiment"].(float64), 1e-9)
	assert.InDelta(t, 0.45, first["max_sentiment"].(float64), 1e-9)
}

func TestAnalyze_EmptyCorpus(t *testing.T) {
	corpus := buildCorpus(t, "")
	out, err := New().Analyze(context.Background(), corpus, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Summary["overall"])
	assert.Equal(t, 0.0, out.Summary["total_sentences"])
}
