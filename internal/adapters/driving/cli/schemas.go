package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List registered atomization schemas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if componentRegistry == nil {
			return errors.New("registry not configured")
		}

		for _, name := range componentRegistry.SchemaNames() {
			schema, err := componentRegistry.Schema(name)
			if err != nil {
				return err
			}
			cmd.Printf("%s (%d levels)\n", schema.Name, schema.Depth())
			for _, lvl := range schema.Levels {
				pattern := lvl.Pattern
				if pattern == "" {
					pattern = string(lvl.Rule)
				}
				cmd.Printf("  %-12s weight %.2f  %s\n", lvl.Name, lvl.Weight, pattern)
			}
			cmd.Println()
		}
		return nil
	},
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List registered analysis modules",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if componentRegistry == nil {
			return errors.New("registry not configured")
		}
		for _, name := range componentRegistry.ModuleNames() {
			cmd.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
	rootCmd.AddCommand(modulesCmd)
}
