// Package cli implements the lexframe command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lexframe-labs/lexframe-cli/internal/adapters/driven/config/file"
	"github.com/lexframe-labs/lexframe-cli/internal/adapters/driven/storage/sqlite"
	"github.com/lexframe-labs/lexframe-cli/internal/analysis"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driving"
	"github.com/lexframe-labs/lexframe-cli/internal/core/services"
	"github.com/lexframe-labs/lexframe-cli/internal/extractors"
	"github.com/lexframe-labs/lexframe-cli/internal/logger"
	"github.com/lexframe-labs/lexframe-cli/internal/naming"
	"github.com/lexframe-labs/lexframe-cli/internal/registry"
	"github.com/lexframe-labs/lexframe-cli/internal/schemas"
)

var (
	verbose   bool
	configDir string

	// Services shared by the commands. Tests replace these with mocks.
	analysisService driving.AnalysisService
	configStore     driven.ConfigStore

	componentRegistry *registry.Registry
	extractorRegistry *extractors.Registry
)

var rootCmd = &cobra.Command{
	Use:   "lexframe",
	Short: "Atomize documents and run text analysis pipelines",
	Long: `lexframe decomposes documents into a hierarchy of addressable atoms
(themes, paragraphs, sentences, words) and runs analysis modules such as
sentiment, temporal flow, and entity recognition over the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		return setup()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.lexframe)")
}

// setup wires the registry, extractors, and services. Commands that
// need the findings store open it themselves via openStore.
func setup() error {
	if analysisService != nil {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	configStore = store

	reg, err := buildRegistry(store)
	if err != nil {
		return err
	}

	ext := extractors.NewRegistry()

	componentRegistry = reg
	extractorRegistry = ext
	analysisService = services.NewAnalysisService(reg, ext, nil)
	return nil
}

// buildRegistry assembles and freezes the component registry: built-in
// naming strategies, schemas and modules, plus profiles discovered in
// the profile directory.
func buildRegistry(store driven.ConfigStore) (*registry.Registry, error) {
	reg := registry.New()

	for key, factory := range naming.Factories() {
		if err := reg.RegisterNaming(key, factory); err != nil {
			return nil, err
		}
	}
	for _, schema := range schemas.Builtins() {
		if err := reg.RegisterSchema(schema); err != nil {
			return nil, err
		}
	}
	if err := analysis.RegisterBuiltins(reg); err != nil {
		return nil, err
	}

	profileDir := store.GetString("profiles.dir")
	if profileDir == "" {
		profileDir = filepath.Join(filepath.Dir(store.Path()), "profiles")
	}
	if err := reg.Discover(profileDir); err != nil {
		return nil, err
	}

	reg.Freeze()
	return reg, nil
}

// openStore opens the SQLite findings store. The caller owns Close.
func openStore() (*sqlite.Store, error) {
	dataDir := ""
	if configStore != nil {
		dataDir = configStore.GetString("storage.dir")
	}
	return sqlite.NewStore(dataDir)
}
