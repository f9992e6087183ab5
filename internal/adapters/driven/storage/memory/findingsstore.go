// Package memory provides in-memory driven adapters for tests and
// ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
)

// Ensure FindingsStore implements the interface.
var _ driven.FindingsStore = (*FindingsStore)(nil)

// FindingsStore keeps runs in memory. Nothing survives process exit.
type FindingsStore struct {
	mu   sync.RWMutex
	runs map[string]*domain.RunResult
}

// NewFindingsStore creates an empty in-memory findings store.
func NewFindingsStore() *FindingsStore {
	return &FindingsStore{
		runs: make(map[string]*domain.RunResult),
	}
}

// SaveRun stores a run, replacing any previous run with the same id.
func (s *FindingsStore) SaveRun(_ context.Context, run *domain.RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

// GetRun retrieves a run by id.
func (s *FindingsStore) GetRun(_ context.Context, id string) (*domain.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, id)
	}
	return run, nil
}

// ListRuns returns stored runs, newest first.
func (s *FindingsStore) ListRuns(_ context.Context, limit int) ([]*domain.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*domain.RunResult, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && limit < len(runs) {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close is a no-op.
func (s *FindingsStore) Close() error {
	return nil
}
