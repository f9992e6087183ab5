package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driving"
	"github.com/lexframe-labs/lexframe-cli/internal/core/services"
	"github.com/lexframe-labs/lexframe-cli/internal/logger"
	"github.com/lexframe-labs/lexframe-cli/internal/report"
	"github.com/lexframe-labs/lexframe-cli/internal/watch"
)

var (
	analyzeSchema   string
	analyzeNaming   string
	analyzeProfile  string
	analyzeModules  []string
	analyzeParallel bool
	analyzeTimeout  time.Duration
	analyzeJSON     bool
	analyzeOut      string
	analyzeSave     bool
	analyzeWatch    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Atomize a document and run analysis modules",
	Long: `Runs the full pipeline: extract the document, atomize it, and execute
the requested analysis modules. A failing module never aborts the run;
its failure is recorded in the result instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSchema, "schema", "", "atomization schema (default \"prose\")")
	analyzeCmd.Flags().StringVar(&analyzeNaming, "naming", "", "naming strategy (default \"hierarchical\")")
	analyzeCmd.Flags().StringVar(&analyzeProfile, "profile", "", "domain profile")
	analyzeCmd.Flags().StringSliceVarP(&analyzeModules, "modules", "m", nil, "modules to run (default: all registered)")
	analyzeCmd.Flags().BoolVar(&analyzeParallel, "parallel", false, "run modules concurrently")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "per-module timeout (e.g. 30s; 0 = none)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the run as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "write the run as JSON to a file")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the run to the findings store")
	analyzeCmd.Flags().BoolVarP(&analyzeWatch, "watch", "w", false, "re-run when the file changes")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	svc := analysisService
	if svc == nil {
		return errors.New("analysis service not configured")
	}

	// Saving needs a findings store; rebuild the service around one.
	if analyzeSave {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("opening findings store: %w", err)
		}
		defer store.Close()
		svc = services.NewAnalysisService(componentRegistry, extractorRegistry, store)
	}

	req := driving.AnalyzeRequest{
		Path:          path,
		SchemaName:    analyzeSchema,
		NamingName:    analyzeNaming,
		ProfileName:   analyzeProfile,
		Modules:       analyzeModules,
		Parallel:      analyzeParallel,
		ModuleTimeout: analyzeTimeout,
		Save:          analyzeSave,
	}

	once := func(ctx context.Context) error {
		run, err := svc.Analyze(ctx, req)
		if err != nil {
			return err
		}
		return outputRun(cmd, run)
	}

	if !analyzeWatch {
		return once(context.Background())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := once(ctx); err != nil {
		// First run failures are reported but do not end the watch.
		logger.Warn("initial run failed: %v", err)
	}
	cmd.Printf("watching %s (interrupt to stop)\n", path)

	w := watch.New(path, once)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func outputRun(cmd *cobra.Command, run *domain.RunResult) error {
	if analyzeOut != "" {
		if err := report.WriteJSONFile(analyzeOut, run); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", analyzeOut)
	}
	if analyzeJSON {
		return report.WriteJSON(cmd.OutOrStdout(), run)
	}
	cmd.Println(report.RenderRun(run))
	return nil
}
