package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowgenhq/flowgen/internal/config"
	"github.com/flowgenhq/flowgen/internal/registry"
)

var (
	catalogFile   string
	catalogPrompt bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the executors available to generated tasks",
	Long: `Catalog prints the registered executors. With --prompt it shows the
exact deterministic rendering the LLM sees, including entry and schema
property limits.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML file of additional executors")
	catalogCmd.Flags().BoolVar(&catalogPrompt, "prompt", false, "show the prompt rendering of the catalog")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	reg := registry.New()
	if err := registry.RegisterBuiltins(reg); err != nil {
		return fmt.Errorf("registering builtin executors: %w", err)
	}
	if catalogFile != "" {
		if err := reg.LoadFile(catalogFile); err != nil {
			return fmt.Errorf("loading catalog file: %w", err)
		}
	}

	if catalogPrompt {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		fmt.Println(reg.FormatForPrompt(cfg.Prompt.MaxCatalogEntries, cfg.Prompt.MaxSchemaProps))
		return nil
	}

	for _, info := range reg.All() {
		fmt.Printf("%s  %s\n", info.ID, info.Description)
		for _, prop := range info.Schema.Properties {
			req := ""
			if prop.Required {
				req = " (required)"
			}
			fmt.Printf("    %s: %s%s - %s\n", prop.Name, prop.Type, req, prop.Description)
		}
	}
	return nil
}
