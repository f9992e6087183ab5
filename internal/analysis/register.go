// Package analysis wires the built-in analysis modules into a registry.
package analysis

import (
	"github.com/lexframe-labs/lexframe-cli/internal/analysis/entity"
	"github.com/lexframe-labs/lexframe-cli/internal/analysis/rhetoric"
	"github.com/lexframe-labs/lexframe-cli/internal/analysis/semantic"
	"github.com/lexframe-labs/lexframe-cli/internal/analysis/sentiment"
	"github.com/lexframe-labs/lexframe-cli/internal/analysis/temporal"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
	"github.com/lexframe-labs/lexframe-cli/internal/registry"
)

// RegisterBuiltins registers every built-in analysis module.
func RegisterBuiltins(r *registry.Registry) error {
	builtins := []struct {
		key     string
		factory driven.ModuleFactory
	}{
		{sentiment.ModuleName, func() driven.AnalysisModule { return sentiment.New() }},
		{temporal.ModuleName, func() driven.AnalysisModule { return temporal.New() }},
		{entity.ModuleName, func() driven.AnalysisModule { return entity.New() }},
		{rhetoric.ModuleName, func() driven.AnalysisModule { return rhetoric.New() }},
		{semantic.ModuleName, func() driven.AnalysisModule { return semantic.New() }},
	}
	for _, b := range builtins {
		if err := r.RegisterModule(b.key, b.factory); err != nil {
			return err
		}
	}
	return nil
}
