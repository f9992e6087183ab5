package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

var (
	atomizeSchema string
	atomizeNaming string
	atomizeJSON   bool
	atomizeDepth  int
)

var atomizeCmd = &cobra.Command{
	Use:   "atomize [file]",
	Short: "Decompose a document into atoms",
	Long: `Splits a document into its atom hierarchy according to a schema and
prints the result, without running any analysis modules.`,
	Args: cobra.ExactArgs(1),
	RunE: runAtomize,
}

func init() {
	atomizeCmd.Flags().StringVar(&atomizeSchema, "schema", "", "atomization schema (default \"prose\")")
	atomizeCmd.Flags().StringVar(&atomizeNaming, "naming", "", "naming strategy (default \"hierarchical\")")
	atomizeCmd.Flags().BoolVar(&atomizeJSON, "json", false, "output the corpus as JSON")
	atomizeCmd.Flags().IntVar(&atomizeDepth, "depth", 0, "limit printed tree depth (0 = all levels)")
	rootCmd.AddCommand(atomizeCmd)
}

func runAtomize(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	corpus, err := analysisService.Atomize(context.Background(), args[0], atomizeSchema, atomizeNaming)
	if err != nil {
		return fmt.Errorf("atomizing %s: %w", args[0], err)
	}

	if atomizeJSON {
		data, err := json.MarshalIndent(corpus, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling corpus: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printCorpus(cmd, corpus)
	return nil
}

// printCorpus renders the atom hierarchy as an indented tree.
func printCorpus(cmd *cobra.Command, corpus *domain.Corpus) {
	cmd.Printf("Corpus %q: %d atoms, schema %q (%d levels)\n\n",
		corpus.Name, corpus.AtomCount(), corpus.Schema.Name, corpus.Schema.Depth())

	const excerptLen = 60
	for d := range corpus.Documents {
		doc := &corpus.Documents[d]
		doc.Walk(func(idx int) bool {
			atom := &doc.Atoms[idx]
			if atomizeDepth > 0 && atom.Level >= atomizeDepth {
				return false
			}
			indent := strings.Repeat("  ", atom.Level)
			level := corpus.Schema.Levels[atom.Level].Name
			cmd.Printf("%s[%s] %s  %s\n", indent, level, atom.ID, atom.Excerpt(excerptLen))
			return true
		})
	}
}
