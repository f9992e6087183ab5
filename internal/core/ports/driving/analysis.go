package driving

import (
	"context"
	"time"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

// AnalyzeRequest describes one end-to-end analysis of a single document.
type AnalyzeRequest struct {
	// Path is the source file to analyze.
	Path string

	// SchemaName selects a registered schema. Empty means the default.
	SchemaName string

	// NamingName selects a registered naming strategy. Empty means the default.
	NamingName string

	// ProfileName selects a registered domain profile. Empty means none.
	ProfileName string

	// Modules lists analysis modules in execution order.
	// Empty means every registered module in registration order.
	Modules []string

	// ModuleConfig carries per-module options keyed by module name.
	ModuleConfig map[string]map[string]any

	// Parallel runs modules concurrently.
	Parallel bool

	// ModuleTimeout bounds each module's wall time. Zero means no bound.
	ModuleTimeout time.Duration

	// Save persists the run when a findings store is configured.
	Save bool
}

// AnalysisService is the primary entry point: extract, atomize, run the
// pipeline, optionally persist.
type AnalysisService interface {
	// Analyze runs the full flow for one document.
	Analyze(ctx context.Context, req AnalyzeRequest) (*domain.RunResult, error)

	// Atomize builds a corpus from one document without running modules.
	Atomize(ctx context.Context, path, schemaName, namingName string) (*domain.Corpus, error)
}
