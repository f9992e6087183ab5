package driven

import (
	"context"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

// AnalysisModule computes one category of findings over a frozen corpus.
//
// Analyze must be a pure function of its arguments: read-only over the
// corpus and profile, no dependence on other modules' output within a run.
// That independence is what allows the pipeline to reorder modules or run
// them in parallel.
type AnalysisModule interface {
	// Name returns the module key used in registration and reports.
	Name() string

	// Analyze runs the module. The profile may be nil, in which case the
	// module falls back to its built-in defaults. Config carries
	// module-specific options parsed from user configuration.
	Analyze(ctx context.Context, corpus *domain.Corpus, profile *domain.Profile, config map[string]any) (*domain.AnalysisOutput, error)
}

// ModuleFactory constructs a fresh analysis module instance.
// The registry stores factories so every pipeline run gets modules with no
// state carried over from earlier runs.
type ModuleFactory func() AnalysisModule
