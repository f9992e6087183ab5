package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lexframe-labs/lexframe-cli/internal/atomizer"
	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driving"
	"github.com/lexframe-labs/lexframe-cli/internal/extractors"
	"github.com/lexframe-labs/lexframe-cli/internal/logger"
	"github.com/lexframe-labs/lexframe-cli/internal/naming"
	"github.com/lexframe-labs/lexframe-cli/internal/registry"
	"github.com/lexframe-labs/lexframe-cli/internal/reproduce"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// DefaultSchema is used when a request names no schema.
const DefaultSchema = "prose"

// AnalysisService drives the full flow: extract, atomize, run the
// pipeline, optionally persist the result.
type AnalysisService struct {
	registry   *registry.Registry
	extractors *extractors.Registry
	store      driven.FindingsStore // optional
}

// NewAnalysisService creates the service. The findings store may be nil;
// saving is then unavailable.
func NewAnalysisService(reg *registry.Registry, ext *extractors.Registry, store driven.FindingsStore) *AnalysisService {
	return &AnalysisService{
		registry:   reg,
		extractors: ext,
		store:      store,
	}
}

// Atomize builds a corpus from one source file without running modules.
func (s *AnalysisService) Atomize(ctx context.Context, path, schemaName, namingName string) (*domain.Corpus, error) {
	doc, schema, strategy, err := s.prepare(ctx, path, schemaName, namingName)
	if err != nil {
		return nil, err
	}
	return atomizer.BuildCorpus(doc.Title, schema, strategy, []domain.Document{*doc})
}

// Analyze runs the full flow for one document.
func (s *AnalysisService) Analyze(ctx context.Context, req driving.AnalyzeRequest) (*domain.RunResult, error) {
	doc, schema, strategy, err := s.prepare(ctx, req.Path, req.SchemaName, req.NamingName)
	if err != nil {
		return nil, err
	}

	corpus, err := atomizer.BuildCorpus(doc.Title, schema, strategy, []domain.Document{*doc})
	if err != nil {
		return nil, err
	}
	logger.Info("atomized %q: %d atoms across %d levels",
		doc.Title, corpus.AtomCount(), schema.Depth())

	var profile *domain.Profile
	if req.ProfileName != "" {
		profile, err = s.registry.Profile(req.ProfileName)
		if err != nil {
			return nil, err
		}
	}

	moduleNames := req.Modules
	if len(moduleNames) == 0 {
		moduleNames = s.registry.ModuleNames()
	}

	pipeline := NewPipeline(s.registry,
		WithParallel(req.Parallel),
		WithModuleTimeout(req.ModuleTimeout),
	)
	run, err := pipeline.Run(ctx, corpus, moduleNames, profile, req.ModuleConfig)
	if err != nil {
		return nil, err
	}
	run.Fingerprint = reproduce.Fingerprint(doc.Text, req.Path)

	if req.Save {
		if s.store == nil {
			return run, errors.New("findings store not configured; cannot save run")
		}
		if err := s.store.SaveRun(ctx, run); err != nil {
			return run, fmt.Errorf("saving run: %w", err)
		}
		logger.Info("saved run %s", run.ID)
	}

	return run, nil
}

// prepare reads and extracts the source file and resolves schema and
// naming from the registry.
func (s *AnalysisService) prepare(ctx context.Context, path, schemaName, namingName string) (*domain.Document, *domain.Schema, driven.NamingStrategy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	format := extractors.DetectFormat(path)
	extracted, err := s.extractors.Extract(ctx, &driven.RawDocument{
		Path:    path,
		Format:  format,
		Content: content,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	logger.Debug("extracted %q (%s, %d bytes)", extracted.Title, format, len(extracted.Text))

	if schemaName == "" {
		schemaName = DefaultSchema
	}
	schema, err := s.registry.Schema(schemaName)
	if err != nil {
		return nil, nil, nil, err
	}

	if namingName == "" {
		namingName = naming.DefaultStrategy
	}
	strategy, err := s.registry.Naming(namingName)
	if err != nil {
		return nil, nil, nil, err
	}

	doc := &domain.Document{
		ID:         reproduce.Fingerprint(extracted.Text, path).Checksum[:12],
		Title:      extracted.Title,
		SourcePath: path,
		Format:     format,
		Text:       extracted.Text,
		Metadata:   extracted.Metadata,
	}
	return doc, schema, strategy, nil
}
