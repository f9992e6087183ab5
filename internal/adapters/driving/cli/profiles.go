package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lexframe-labs/lexframe-cli/internal/registry"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage domain profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered domain profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if componentRegistry == nil {
			return errors.New("registry not configured")
		}

		names := componentRegistry.ProfileNames()
		if len(names) == 0 {
			cmd.Println("No profiles registered. Place .toml or .yaml profile files in the profile directory.")
			return nil
		}

		for _, name := range names {
			profile, err := componentRegistry.Profile(name)
			if err != nil {
				return err
			}
			cmd.Printf("%-20s %d lexicon terms, %d entity patterns",
				profile.Name, len(profile.Lexicon), len(profile.Patterns))
			if profile.Description != "" {
				cmd.Printf("  %s", profile.Description)
			}
			cmd.Println()
		}
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one profile in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if componentRegistry == nil {
			return errors.New("registry not configured")
		}

		profile, err := componentRegistry.Profile(args[0])
		if err != nil {
			return err
		}

		cmd.Printf("Profile %q\n", profile.Name)
		if profile.Description != "" {
			cmd.Println(profile.Description)
		}
		cmd.Printf("\nLexicon (%d terms):\n", len(profile.Lexicon))
		terms := make([]string, 0, len(profile.Lexicon))
		for term := range profile.Lexicon {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for _, term := range terms {
			cmd.Printf("  %-20s %+.1f\n", term, profile.Lexicon[term])
		}
		cmd.Printf("\nEntity patterns (%d):\n", len(profile.Patterns))
		for _, p := range profile.Patterns {
			cmd.Printf("  %-12s %s\n", p.Label, p.Pattern)
		}
		return nil
	},
}

var profilesValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a profile file without registering it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := registry.LoadProfileFile(args[0])
		if err != nil {
			return fmt.Errorf("invalid profile: %w", err)
		}
		cmd.Printf("ok: profile %q (%d lexicon terms, %d entity patterns)\n",
			profile.Name, len(profile.Lexicon), len(profile.Patterns))
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesValidateCmd)
	rootCmd.AddCommand(profilesCmd)
}
