package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lexframe-labs/lexframe-cli/internal/report"
	"github.com/lexframe-labs/lexframe-cli/internal/reproduce"
)

var (
	runsLimit         int
	runsCompareModule string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect saved analysis runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("opening findings store: %w", err)
		}
		defer store.Close()

		runs, err := store.ListRuns(context.Background(), runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			cmd.Println("No saved runs. Use analyze --save to persist one.")
			return nil
		}

		for _, run := range runs {
			cmd.Printf("%s  %s  corpus %q  %d/%d ok\n",
				run.ID, run.StartedAt.Format("2006-01-02 15:04:05"),
				run.CorpusName, run.Succeeded(), len(run.Modules))
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("opening findings store: %w", err)
		}
		defer store.Close()

		run, err := store.GetRun(context.Background(), args[0])
		if err != nil {
			return err
		}
		cmd.Println(report.RenderRun(run))
		return nil
	},
}

var runsCompareCmd = &cobra.Command{
	Use:   "compare [from-run-id] [to-run-id]",
	Short: "Compare module scores between two saved runs",
	Long: `Diffs one module's summary metrics between two saved runs, showing
which metrics improved, declined, or stayed unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("opening findings store: %w", err)
		}
		defer store.Close()

		ctx := context.Background()
		from, err := store.GetRun(ctx, args[0])
		if err != nil {
			return err
		}
		to, err := store.GetRun(ctx, args[1])
		if err != nil {
			return err
		}

		cmp, err := reproduce.CompareRuns(from, to, runsCompareModule)
		if err != nil {
			return err
		}

		cmd.Printf("Comparing %q: %s -> %s\n\n", cmp.Module, cmp.FromRun, cmp.ToRun)
		cmd.Printf("overall delta: %+.4f\n", cmp.OverallDelta)
		metrics := make([]string, 0, len(cmp.MetricDeltas))
		for metric := range cmp.MetricDeltas {
			metrics = append(metrics, metric)
		}
		sort.Strings(metrics)
		for _, metric := range metrics {
			cmd.Printf("  %-24s %+.4f\n", metric, cmp.MetricDeltas[metric])
		}
		cmd.Printf("\n%d improved, %d declined, %d unchanged\n",
			len(cmp.Improved), len(cmp.Declined), len(cmp.Unchanged))
		if cmp.NetImprovement() {
			cmd.Println("net improvement")
		}
		return nil
	},
}

func init() {
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs to list")
	runsCompareCmd.Flags().StringVarP(&runsCompareModule, "module", "m", "", "module whose scores to compare (required)")
	runsCompareCmd.MarkFlagRequired("module")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsCompareCmd)
	rootCmd.AddCommand(runsCmd)
}
