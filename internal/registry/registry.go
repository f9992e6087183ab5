// Package registry catalogs constructible named components: analysis
// modules, naming strategies, atomization schemas and domain profiles.
//
// The registry is an explicit object injected into the pipeline rather
// than package-level state. Lifecycle: construct, populate via Register*
// and Discover, Freeze, then lookups only. Tests build a fresh instance
// per case.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
)

// Registry maps string keys to component constructors and profiles.
// Registration is single-writer before Freeze; lookups afterwards are safe
// from any goroutine.
type Registry struct {
	mu     sync.RWMutex
	frozen bool

	modules    map[string]driven.ModuleFactory
	naming     map[string]driven.NamingFactory
	schemas    map[string]*domain.Schema
	profiles   map[string]*domain.Profile
	moduleSeq  []string
	profileSeq []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		modules:  make(map[string]driven.ModuleFactory),
		naming:   make(map[string]driven.NamingFactory),
		schemas:  make(map[string]*domain.Schema),
		profiles: make(map[string]*domain.Profile),
	}
}

// Freeze marks the registry read-only. Later registrations fail with
// ErrRegistryFrozen.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

func (r *Registry) guard(kind, key string) error {
	if r.frozen {
		return fmt.Errorf("%w: cannot register %s %q", domain.ErrRegistryFrozen, kind, key)
	}
	if key == "" {
		return fmt.Errorf("%w: empty %s key", domain.ErrInvalidInput, kind)
	}
	return nil
}

// RegisterModule adds an analysis module factory.
// Fails with ErrDuplicateKey if the key is taken; never overwrites.
func (r *Registry) RegisterModule(key string, factory driven.ModuleFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.guard("module", key); err != nil {
		return err
	}
	if _, ok := r.modules[key]; ok {
		return fmt.Errorf("%w: module %q", domain.ErrDuplicateKey, key)
	}
	r.modules[key] = factory
	r.moduleSeq = append(r.moduleSeq, key)
	return nil
}

// Module constructs the named analysis module.
// Fails with ErrUnknownKey if not registered.
func (r *Registry) Module(key string) (driven.AnalysisModule, error) {
	r.mu.RLock()
	factory, ok := r.modules[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: module %q", domain.ErrUnknownKey, key)
	}
	return factory(), nil
}

// ModuleNames returns registered module keys in registration order.
func (r *Registry) ModuleNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.moduleSeq...)
}

// RegisterNaming adds a naming strategy factory.
func (r *Registry) RegisterNaming(key string, factory driven.NamingFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.guard("naming strategy", key); err != nil {
		return err
	}
	if _, ok := r.naming[key]; ok {
		return fmt.Errorf("%w: naming strategy %q", domain.ErrDuplicateKey, key)
	}
	r.naming[key] = factory
	return nil
}

// Naming constructs a fresh instance of the named strategy.
func (r *Registry) Naming(key string) (driven.NamingStrategy, error) {
	r.mu.RLock()
	factory, ok := r.naming[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: naming strategy %q", domain.ErrUnknownKey, key)
	}
	return factory(), nil
}

// RegisterSchema adds a validated schema.
func (r *Registry) RegisterSchema(schema *domain.Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if schema == nil {
		return fmt.Errorf("%w: nil schema", domain.ErrInvalidInput)
	}
	if err := r.guard("schema", schema.Name); err != nil {
		return err
	}
	if _, ok := r.schemas[schema.Name]; ok {
		return fmt.Errorf("%w: schema %q", domain.ErrDuplicateKey, schema.Name)
	}
	r.schemas[schema.Name] = schema
	return nil
}

// Schema returns the named schema.
func (r *Registry) Schema(key string) (*domain.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schema, ok := r.schemas[key]
	if !ok {
		return nil, fmt.Errorf("%w: schema %q", domain.ErrUnknownKey, key)
	}
	return schema, nil
}

// SchemaNames returns registered schema names, sorted.
func (r *Registry) SchemaNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterProfile adds a domain profile.
func (r *Registry) RegisterProfile(profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile == nil {
		return fmt.Errorf("%w: nil profile", domain.ErrInvalidInput)
	}
	if err := r.guard("profile", profile.Name); err != nil {
		return err
	}
	if _, ok := r.profiles[profile.Name]; ok {
		return fmt.Errorf("%w: profile %q", domain.ErrDuplicateKey, profile.Name)
	}
	r.profiles[profile.Name] = profile
	r.profileSeq = append(r.profileSeq, profile.Name)
	return nil
}

// Profile returns the named domain profile.
func (r *Registry) Profile(key string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[key]
	if !ok {
		return nil, fmt.Errorf("%w: profile %q", domain.ErrUnknownKey, key)
	}
	return profile, nil
}

// ProfileNames returns registered profile names, sorted.
func (r *Registry) ProfileNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := append([]string(nil), r.profileSeq...)
	sort.Strings(names)
	return names
}
