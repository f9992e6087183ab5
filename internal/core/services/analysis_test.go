package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexframe-labs/lexframe-cli/internal/adapters/driven/storage/memory"
	"github.com/lexframe-labs/lexframe-cli/internal/analysis"
	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driving"
	"github.com/lexframe-labs/lexframe-cli/internal/extractors"
	"github.com/lexframe-labs/lexframe-cli/internal/naming"
	"github.com/lexframe-labs/lexframe-cli/internal/registry"
	"github.com/lexframe-labs/lexframe-cli/internal/schemas"
)

func newService(t *testing.T, store driven.FindingsStore) *AnalysisService {
	t.Helper()
	reg := registry.New()
	for key, factory := range naming.Factories() {
		require.NoError(t, reg.RegisterNaming(key, factory))
	}
	for _, schema := range schemas.Builtins() {
		require.NoError(t, reg.RegisterSchema(schema))
	}
	require.NoError(t, analysis.RegisterBuiltins(reg))
	reg.Freeze()

	return NewAnalysisService(reg, extractors.NewRegistry(), store)
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestAtomize_DefaultsToProseSchema(t *testing.T) {
	svc := newService(t, nil)
	path := writeSource(t, "field_notes.txt", "One fish. Two fish.\n\nRed fish.")

	corpus, err := svc.Atomize(context.Background(), path, "", "")
	require.NoError(t, err)

	assert.Equal(t, "field notes", corpus.Name, "corpus named after the extracted title")
	assert.Equal(t, "prose", corpus.Schema.Name)
	assert.Greater(t, corpus.AtomCount(), 0)
}

func TestAtomize_UnknownSchema(t *testing.T) {
	svc := newService(t, nil)
	path := writeSource(t, "notes.txt", "text")

	_, err := svc.Atomize(context.Background(), path, "no-such-schema", "")
	assert.ErrorIs(t, err, domain.ErrUnknownKey)
}

func TestAnalyze_FullFlow(t *testing.T) {
	store := memory.NewFindingsStore()
	svc := newService(t, store)
	path := writeSource(t, "story.txt", "I love this wonderful day. The war brought pain.")

	run, err := svc.Analyze(context.Background(), driving.AnalyzeRequest{
		Path:    path,
		Modules: []string{"sentiment"},
		Save:    true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "story", run.CorpusName)
	assert.Equal(t, []string{"sentiment"}, run.Modules)
	require.NotNil(t, run.Results["sentiment"])
	assert.Equal(t, domain.StatusOK, run.Results["sentiment"].Status)

	require.NotNil(t, run.Fingerprint)
	assert.Len(t, run.Fingerprint.Checksum, 64)
	assert.Equal(t, path, run.Fingerprint.SourcePath)

	saved, err := store.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, saved.ID)
}

func TestAnalyze_DefaultsToAllModules(t *testing.T) {
	svc := newService(t, nil)
	path := writeSource(t, "story.txt", "A quiet morning. Nothing moved.")

	run, err := svc.Analyze(context.Background(), driving.AnalyzeRequest{Path: path})
	require.NoError(t, err)

	assert.Len(t, run.Modules, 5, "every registered module runs when none are named")
	assert.True(t, run.AllOK())
}

func TestAnalyze_SaveWithoutStore(t *testing.T) {
	svc := newService(t, nil)
	path := writeSource(t, "story.txt", "Some text here.")

	run, err := svc.Analyze(context.Background(), driving.AnalyzeRequest{
		Path:    path,
		Modules: []string{"sentiment"},
		Save:    true,
	})
	assert.Error(t, err)
	assert.NotNil(t, run, "the run itself still comes back")
}

func TestAnalyze_UnknownProfile(t *testing.T) {
	svc := newService(t, nil)
	path := writeSource(t, "story.txt", "Some text here.")

	_, err := svc.Analyze(context.Background(), driving.AnalyzeRequest{
		Path:        path,
		ProfileName: "no-such-profile",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownKey)
}

func TestAnalyze_MissingFile(t *testing.T) {
	svc := newService(t, nil)
	_, err := svc.Analyze(context.Background(), driving.AnalyzeRequest{
		Path: filepath.Join(t.TempDir(), "does-not-exist.txt"),
	})
	assert.Error(t, err)
}

func TestAnalyze_MarkdownTitle(t *testing.T) {
	svc := newService(t, nil)
	path := writeSource(t, "chapter.md", "# The Crossing\n\nThey walked all night.")

	corpus, err := svc.Atomize(context.Background(), path, "", "")
	require.NoError(t, err)
	assert.Equal(t, "The Crossing", corpus.Name)
}
