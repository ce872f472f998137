package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	jsonOutput bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prevet",
		Short: "Prevet - Pipeline Validation Engine",
		Long: `Prevet orchestrates sanity checks over production data.

Blueprints declare which checks run, with what arguments, tags and
cross-check links. Processes hold the actual diagnostic logic and are
registered by the host application at build time.

Features:
  - Declarative YAML blueprints
  - Severity-ranked statuses with per-blueprint overrides
  - Check / fix / tool process contract
  - Cross-processor links
  - Batch execution with worst-status reports`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newShowCommand())

	return rootCmd
}
