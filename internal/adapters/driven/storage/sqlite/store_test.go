package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(id string, startedAt time.Time) *domain.RunResult {
	return &domain.RunResult{
		ID:         id,
		CorpusName: "field notes",
		Profile:    "western",
		Modules:    []string{"sentiment", "entity"},
		Results: map[string]*domain.ModuleResult{
			"sentiment": {
				ModuleName: "sentiment",
				Status:     domain.StatusOK,
				Output: &domain.AnalysisOutput{
					ModuleName: "sentiment",
					Data:       map[string]any{"total": float64(3)},
					Summary:    map[string]float64{"overall": 0.25},
				},
			},
			"entity": {
				ModuleName:   "entity",
				Status:       domain.StatusFailed,
				ErrorKind:    "error",
				ErrorMessage: "pattern compile failed",
			},
		},
		Fingerprint: &domain.Fingerprint{
			Checksum:   "abc123",
			ByteSize:   100,
			CharCount:  98,
			SourcePath: "/tmp/notes.txt",
		},
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(2 * time.Second),
	}
}

func TestSaveRun_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	run := sampleRun("run-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.CorpusName, got.CorpusName)
	assert.Equal(t, run.Profile, got.Profile)
	assert.Equal(t, run.Modules, got.Modules)
	require.NotNil(t, got.Fingerprint)
	assert.Equal(t, run.Fingerprint, got.Fingerprint)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
	assert.True(t, run.FinishedAt.Equal(got.FinishedAt))

	require.Len(t, got.Results, 2)
	ok := got.Results["sentiment"]
	require.NotNil(t, ok)
	assert.Equal(t, domain.StatusOK, ok.Status)
	require.NotNil(t, ok.Output)
	assert.Equal(t, 0.25, ok.Output.Summary["overall"])
	assert.Equal(t, float64(3), ok.Output.Data["total"])

	failed := got.Results["entity"]
	require.NotNil(t, failed)
	assert.Equal(t, domain.StatusFailed, failed.Status)
	assert.Equal(t, "error", failed.ErrorKind)
	assert.Equal(t, "pattern compile failed", failed.ErrorMessage)
	assert.Nil(t, failed.Output)
}

func TestGetRun_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveRun_ReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(ctx, sampleRun("run-1", started)))

	updated := sampleRun("run-1", started)
	updated.CorpusName = "revised notes"
	updated.Modules = []string{"sentiment"}
	updated.Results = map[string]*domain.ModuleResult{
		"sentiment": updated.Results["sentiment"],
	}
	require.NoError(t, store.SaveRun(ctx, updated))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "revised notes", got.CorpusName)
	assert.Len(t, got.Results, 1, "stale module results are cleared on re-save")
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, store.SaveRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-a", runs[2].ID)
	require.Len(t, runs[0].Results, 2, "listed runs carry their module results")

	limited, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "run-c", limited[0].ID)
	assert.Equal(t, "run-b", limited[1].ID)
}

func TestNewStore_CreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "findings.db"), store.Path())
	assert.FileExists(t, store.Path())
}
