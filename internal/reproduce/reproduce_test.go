package reproduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("Hello world. Goodbye now.", "a.txt")
	b := Fingerprint("Hello world. Goodbye now.", "b.txt")

	assert.Equal(t, a.Checksum, b.Checksum, "checksum depends on text only")
	assert.Len(t, a.Checksum, 64)
	assert.Equal(t, 25, a.ByteSize)
	assert.Equal(t, 25, a.CharCount)
	assert.Equal(t, "a.txt", a.SourcePath)
}

func TestFingerprint_CountsRunesNotBytes(t *testing.T) {
	fp := Fingerprint("caffè", "")
	assert.Equal(t, 6, fp.ByteSize)
	assert.Equal(t, 5, fp.CharCount)
}

func TestFingerprint_DiffersOnContent(t *testing.T) {
	a := Fingerprint("one", "")
	b := Fingerprint("two", "")
	assert.NotEqual(t, a.Checksum, b.Checksum)
}

func runWithSummary(id string, summary map[string]float64) *domain.RunResult {
	return &domain.RunResult{
		ID:      id,
		Modules: []string{"sentiment"},
		Results: map[string]*domain.ModuleResult{
			"sentiment": {
				ModuleName: "sentiment",
				Status:     domain.StatusOK,
				Output:     &domain.AnalysisOutput{ModuleName: "sentiment", Summary: summary},
			},
		},
	}
}

func TestCompareRuns(t *testing.T) {
	from := runWithSummary("run-1", map[string]float64{
		"overall":        0.10,
		"positive_share": 0.40,
		"negative_share": 0.30,
	})
	to := runWithSummary("run-2", map[string]float64{
		"overall":        0.25,
		"positive_share": 0.40,
		"negative_share": 0.20,
		"new_metric":     1.0, // not shared; excluded from the diff
	})

	cmp, err := CompareRuns(from, to, "sentiment")
	require.NoError(t, err)

	assert.Equal(t, "run-1", cmp.FromRun)
	assert.Equal(t, "run-2", cmp.ToRun)
	assert.InDelta(t, 0.15, cmp.OverallDelta, 1e-9)
	assert.True(t, cmp.NetImprovement())

	assert.Len(t, cmp.MetricDeltas, 3)
	assert.NotContains(t, cmp.MetricDeltas, "new_metric")
	assert.Equal(t, []string{"overall"}, cmp.Improved)
	assert.Equal(t, []string{"negative_share"}, cmp.Declined)
	assert.Equal(t, []string{"positive_share"}, cmp.Unchanged)
}

func TestCompareRuns_MissingModule(t *testing.T) {
	from := runWithSummary("run-1", map[string]float64{"overall": 1})
	to := runWithSummary("run-2", map[string]float64{"overall": 2})

	_, err := CompareRuns(from, to, "entity")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompareRuns_FailedModule(t *testing.T) {
	from := runWithSummary("run-1", map[string]float64{"overall": 1})
	to := &domain.RunResult{
		ID:      "run-2",
		Modules: []string{"sentiment"},
		Results: map[string]*domain.ModuleResult{
			"sentiment": {ModuleName: "sentiment", Status: domain.StatusFailed},
		},
	}

	_, err := CompareRuns(from, to, "sentiment")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
