package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/logger"
)

// profileFile is the declarative on-disk shape of a domain profile.
// Profiles are pure data; nothing in them is ever executed.
type profileFile struct {
	Name        string             `toml:"name" yaml:"name"`
	Description string             `toml:"description" yaml:"description"`
	Lexicon     map[string]float64 `toml:"lexicon" yaml:"lexicon"`
	Patterns    []patternEntry     `toml:"patterns" yaml:"patterns"`
}

type patternEntry struct {
	Label   string `toml:"label" yaml:"label"`
	Pattern string `toml:"pattern" yaml:"pattern"`
}

// Discover scans a directory for profile declarations (*.toml, *.yaml,
// *.yml), validates each and registers it. Files are visited in name order
// so duplicate-name failures are deterministic. A missing directory is not
// an error; discovery simply registers nothing.
func (r *Registry) Discover(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading profile directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".toml", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		profile, err := LoadProfileFile(path)
		if err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}
		if err := r.RegisterProfile(profile); err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}
		logger.Debug("discovered profile %q from %s", profile.Name, name)
	}

	return nil
}

// LoadProfileFile parses and validates one profile declaration.
// The file stem is used when the declaration omits a name.
func LoadProfileFile(path string) (*domain.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pf profileFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported profile format %q", domain.ErrConfiguration, filepath.Ext(path))
	}

	if pf.Name == "" {
		pf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	patterns := make([]domain.EntityPattern, 0, len(pf.Patterns))
	for _, p := range pf.Patterns {
		patterns = append(patterns, domain.EntityPattern{Label: p.Label, Pattern: p.Pattern})
	}

	return domain.NewProfile(pf.Name, pf.Description, pf.Lexicon, patterns)
}
