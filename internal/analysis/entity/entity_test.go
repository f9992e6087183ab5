package entity

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

func TestAnalyze_DefaultPatterns(t *testing.T) {
	corpus := buildCorpus(t,
		"Anna Karenina crossed the river at dawn. The trip took 40 minutes, nearly an hour.")

	out, err := New().Analyze(context.Background(), corpus, nil, nil)
	require.NoError(t, err)

	sentences := out.Data["sentence_entities"].([]map[string]any)
	require.Len(t, sentences, 2)

	first := sentences[0]["entities"].(map[string][]string)
	assert.Equal(t, []string{"Anna Karenina"}, first["PERSON"])
	assert.Equal(t, []string{"river"}, first["LOCATION"])
	assert.Equal(t, []string{"dawn"}, first["TEMPORAL"])

	second := sentences[1]["entities"].(map[string][]string)
	assert.Equal(t, []string{"40"}, second["NUMBER"])
	assert.Equal(t, []string{"hour"}, second["TEMPORAL"])

	assert.Equal(t, 5.0, out.Summary["total_entities"])
	assert.Equal(t, 4.0, out.Summary["entity_types"])
	assert.Equal(t, out.Summary["overall"], out.Summary["total_entities"])
	assert.Equal(t, false, out.Metadata["profile_loaded"])
}

func TestAnalyze_PersonPatternIsCaseSensitive(t *testing.T) {
	corpus := buildCorpus(t, "the quick brown fox says nothing at all")

	out, err := New().Analyze(context.Background(), corpus, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Summary["total_entities"])
	assert.Empty(t, out.Data["sentence_entities"])
}

func TestAnalyze_ProfilePatternsReplaceDefaults(t *testing.T) {
	corpus := buildCorpus(t, "The ship Argo sailed past the harbor with John Smith aboard.")
	profile, err := domain.NewProfile("nautical", "", nil, []domain.EntityPattern{
		{Label: "VESSEL", Pattern: `\b(?:ship|Argo)\b`},
	})
	require.NoError(t, err)

	out, err := New().Analyze(context.Background(), corpus, profile, nil)
	require.NoError(t, err)

	sentences := out.Data["sentence_entities"].([]map[string]any)
	require.Len(t, sentences, 1)
	found := sentences[0]["entities"].(map[string][]string)
	assert.Equal(t, []string{"ship", "Argo"}, found["VESSEL"])
	assert.NotContains(t, found, "PERSON", "profile patterns replace the defaults")
	assert.Equal(t, true, out.Metadata["profile_loaded"])
}

func TestAnalyze_TopMentionsRanking(t *testing.T) {
	corpus := buildCorpus(t,
		"Mary Shelley wrote at night. Mary Shelley read at night. Percy Shelley slept all day.")

	out, err := New().Analyze(context.Background(), corpus, nil, nil)
	require.NoError(t, err)

	stats := out.Data["entity_statistics"].(map[string]any)
	byType := stats["by_type"].(map[string]any)
	person := byType["PERSON"].(map[string]any)
	assert.Equal(t, 3, person["total"])
	assert.Equal(t, 2, person["unique"])

	top := person["top"].([]map[string]any)
	require.Len(t, top, 2)
	assert.Equal(t, "Mary Shelley", top[0]["text"])
	assert.Equal(t, 2, top[0]["count"])
	assert.Equal(t, "Percy Shelley", top[1]["text"])
}
