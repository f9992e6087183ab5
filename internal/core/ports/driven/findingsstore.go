package driven

import (
	"context"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

// FindingsStore persists completed pipeline runs for later inspection and
// comparison. The core is otherwise stateless between runs.
type FindingsStore interface {
	// SaveRun stores a run with all per-module results.
	SaveRun(ctx context.Context, run *domain.RunResult) error

	// GetRun retrieves a run by id. Returns domain.ErrNotFound if absent.
	GetRun(ctx context.Context, id string) (*domain.RunResult, error)

	// ListRuns returns stored runs, newest first, at most limit entries.
	// limit <= 0 means no limit.
	ListRuns(ctx context.Context, limit int) ([]*domain.RunResult, error)

	// Close releases underlying resources.
	Close() error
}
