package reproduce

import (
	"fmt"
	"sort"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

// ScoreComparison reports how one run's summary metrics moved relative to
// an earlier run of the same module.
type ScoreComparison struct {
	FromRun string `json:"from_run"`
	ToRun   string `json:"to_run"`
	Module  string `json:"module"`

	// OverallDelta is the change in the module's "overall" metric when
	// both runs report one.
	OverallDelta float64 `json:"overall_delta"`

	// MetricDeltas maps each shared metric to (to - from).
	MetricDeltas map[string]float64 `json:"metric_deltas"`

	Improved  []string `json:"improved,omitempty"`
	Declined  []string `json:"declined,omitempty"`
	Unchanged []string `json:"unchanged,omitempty"`
}

// NetImprovement returns true when the overall metric moved up.
func (c *ScoreComparison) NetImprovement() bool {
	return c.OverallDelta > 0
}

// CompareRuns diffs one module's summary metrics between two runs.
// Both runs must contain a successful result for the module.
func CompareRuns(from, to *domain.RunResult, module string) (*ScoreComparison, error) {
	fromRes, err := moduleSummary(from, module)
	if err != nil {
		return nil, err
	}
	toRes, err := moduleSummary(to, module)
	if err != nil {
		return nil, err
	}

	cmp := &ScoreComparison{
		FromRun:      from.ID,
		ToRun:        to.ID,
		Module:       module,
		MetricDeltas: make(map[string]float64),
	}

	keys := make([]string, 0, len(fromRes))
	for k := range fromRes {
		if _, ok := toRes[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		delta := toRes[k] - fromRes[k]
		cmp.MetricDeltas[k] = delta
		switch {
		case delta > 0:
			cmp.Improved = append(cmp.Improved, k)
		case delta < 0:
			cmp.Declined = append(cmp.Declined, k)
		default:
			cmp.Unchanged = append(cmp.Unchanged, k)
		}
	}

	if d, ok := cmp.MetricDeltas["overall"]; ok {
		cmp.OverallDelta = d
	}
	return cmp, nil
}

func moduleSummary(run *domain.RunResult, module string) (map[string]float64, error) {
	res, ok := run.Results[module]
	if !ok {
		return nil, fmt.Errorf("%w: run %s has no result for module %q", domain.ErrNotFound, run.ID, module)
	}
	if res.Failed() || res.Output == nil {
		return nil, fmt.Errorf("%w: run %s module %q did not succeed", domain.ErrNotFound, run.ID, module)
	}
	if len(res.Output.Summary) == 0 {
		return nil, fmt.Errorf("%w: run %s module %q has no summary metrics", domain.ErrNotFound, run.ID, module)
	}
	return res.Output.Summary, nil
}
