package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowgen",
	Short: "Generate validated task trees from natural language",
	Long: `Flowgen turns a free-text requirement into a validated, executable
task dependency graph by prompting an LLM and strictly validating the
output before it reaches an execution engine.

Core capabilities:
- Assembles token-bounded documentation context for the prompt
- Renders the registered executor catalog deterministically
- Extracts a JSON task array from free-form model output
- Enforces every structural invariant of a valid task tree`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
