package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
	"github.com/lexframe-labs/lexframe-cli/internal/logger"
	"github.com/lexframe-labs/lexframe-cli/internal/registry"
)

// Pipeline runs an ordered list of analysis modules against one corpus.
// Modules are mutually independent: each receives only the corpus, the
// profile and its own config, so the pipeline may run them in parallel.
type Pipeline struct {
	registry *registry.Registry
	parallel bool
	timeout  time.Duration
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithParallel runs modules on separate goroutines. Each module writes to
// its own pre-allocated result slot; no state is shared between modules.
func WithParallel(parallel bool) Option {
	return func(p *Pipeline) {
		p.parallel = parallel
	}
}

// WithModuleTimeout bounds each module's wall time. A module that exceeds
// the budget is recorded as timed out and the run continues.
func WithModuleTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewPipeline creates a pipeline over the given registry.
func NewPipeline(reg *registry.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{registry: reg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the named modules in caller order and returns every slot,
// successful or not. A failing module never aborts the run; its slot
// records the error kind and message and execution continues. Run itself
// errors only on invalid arguments.
func (p *Pipeline) Run(ctx context.Context, corpus *domain.Corpus, moduleNames []string, profile *domain.Profile, configs map[string]map[string]any) (*domain.RunResult, error) {
	if corpus == nil {
		return nil, fmt.Errorf("%w: nil corpus", domain.ErrInvalidInput)
	}
	if len(moduleNames) == 0 {
		return nil, fmt.Errorf("%w: no modules requested", domain.ErrInvalidInput)
	}

	run := &domain.RunResult{
		ID:         uuid.New().String(),
		CorpusName: corpus.Name,
		Modules:    append([]string(nil), moduleNames...),
		Results:    make(map[string]*domain.ModuleResult, len(moduleNames)),
		StartedAt:  time.Now(),
	}
	if profile != nil {
		run.Profile = profile.Name
	}

	slots := make([]*domain.ModuleResult, len(moduleNames))

	if p.parallel {
		var wg sync.WaitGroup
		for i, name := range moduleNames {
			wg.Add(1)
			go func(i int, name string) {
				defer wg.Done()
				slots[i] = p.runModule(ctx, corpus, name, profile, configs[name])
			}(i, name)
		}
		wg.Wait()
	} else {
		for i, name := range moduleNames {
			slots[i] = p.runModule(ctx, corpus, name, profile, configs[name])
		}
	}

	for _, slot := range slots {
		run.Results[slot.ModuleName] = slot
	}
	run.FinishedAt = time.Now()

	logger.Info("pipeline run %s: %d/%d modules succeeded",
		run.ID, run.Succeeded(), len(run.Modules))
	return run, nil
}

// runModule executes one module with panic isolation and the optional
// per-module wall budget.
func (p *Pipeline) runModule(ctx context.Context, corpus *domain.Corpus, name string, profile *domain.Profile, config map[string]any) *domain.ModuleResult {
	module, err := p.registry.Module(name)
	if err != nil {
		logger.Warn("module %q not registered", name)
		return &domain.ModuleResult{
			ModuleName:   name,
			Status:       domain.StatusFailed,
			ErrorKind:    "unknown_module",
			ErrorMessage: err.Error(),
		}
	}

	if p.timeout <= 0 {
		return invoke(ctx, module, corpus, profile, config)
	}

	moduleCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan *domain.ModuleResult, 1)
	go func() {
		done <- invoke(moduleCtx, module, corpus, profile, config)
	}()

	select {
	case result := <-done:
		return result
	case <-moduleCtx.Done():
		logger.Warn("module %q exceeded %s budget", name, p.timeout)
		return &domain.ModuleResult{
			ModuleName:   name,
			Status:       domain.StatusTimeout,
			ErrorKind:    "timeout",
			ErrorMessage: fmt.Sprintf("module %q exceeded %s", name, p.timeout),
		}
	}
}

// invoke calls Analyze with panic recovery. A panicking module becomes a
// failed slot, consistent with the partial-failure contract.
func invoke(ctx context.Context, module driven.AnalysisModule, corpus *domain.Corpus, profile *domain.Profile, config map[string]any) (result *domain.ModuleResult) {
	name := module.Name()
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("module %q panicked: %v", name, r)
			result = &domain.ModuleResult{
				ModuleName:   name,
				Status:       domain.StatusFailed,
				ErrorKind:    "panic",
				ErrorMessage: fmt.Sprintf("%v", r),
			}
		}
	}()

	started := time.Now()
	output, err := module.Analyze(ctx, corpus, profile, config)
	if err != nil {
		logger.Warn("module %q failed: %v", name, err)
		return &domain.ModuleResult{
			ModuleName:   name,
			Status:       domain.StatusFailed,
			ErrorKind:    "error",
			ErrorMessage: err.Error(),
		}
	}

	logger.Debug("module %q finished in %s", name, time.Since(started).Round(time.Millisecond))
	return &domain.ModuleResult{
		ModuleName: name,
		Status:     domain.StatusOK,
		Output:     output,
	}
}
