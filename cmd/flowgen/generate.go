package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flowgenhq/flowgen/internal/config"
	"github.com/flowgenhq/flowgen/internal/docs"
	"github.com/flowgenhq/flowgen/internal/generate"
	"github.com/flowgenhq/flowgen/internal/registry"
)

var (
	generateUserID      string
	generateProvider    string
	generateModel       string
	generateTemperature float64
	generateMaxTokens   int
	generateDocsDir     string
	generateCatalog     string
	generateDebugLog    string
	generateJSON        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [requirement]",
	Short: "Generate a task tree from a natural language requirement",
	Long: `Generate prompts the configured LLM with the requirement, the
reference documentation, and the executor catalog, then parses and
validates the returned task tree. The tree is only printed if every
structural check passes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateUserID, "user-id", "", "user ID applied to generated tasks")
	generateCmd.Flags().StringVar(&generateProvider, "provider", "", "LLM provider (anthropic or openai)")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "model name (provider default when omitted)")
	generateCmd.Flags().Float64Var(&generateTemperature, "temperature", generate.DefaultTemperature, "sampling temperature")
	generateCmd.Flags().IntVar(&generateMaxTokens, "max-tokens", generate.DefaultMaxTokens, "maximum generation tokens")
	generateCmd.Flags().StringVar(&generateDocsDir, "docs-dir", "", "documentation directory for prompt context")
	generateCmd.Flags().StringVar(&generateCatalog, "catalog", "", "YAML file of additional executors for the catalog")
	generateCmd.Flags().StringVar(&generateDebugLog, "debug-log", "", "write a debug log to this file")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "print the task tree as JSON")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	requirement := strings.TrimSpace(strings.Join(args, " "))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	docsDir := cfg.Docs.Dir
	if generateDocsDir != "" {
		docsDir = generateDocsDir
	}
	store := docs.NewStore(docsDir)
	defer store.Close()

	for _, name := range docs.Names() {
		if !store.Exists(name) {
			color.Yellow("Warning: documentation %q not found under %s", name, docsDir)
		}
	}

	reg := registry.New()
	if err := registry.RegisterBuiltins(reg); err != nil {
		return fmt.Errorf("registering builtin executors: %w", err)
	}
	if generateCatalog != "" {
		if err := reg.LoadFile(generateCatalog); err != nil {
			return fmt.Errorf("loading catalog file: %w", err)
		}
	}

	logger := generate.NopLogger()
	if generateDebugLog != "" {
		logger, err = generate.NewDebugLogger(generateDebugLog)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer logger.Close()
	}

	pipeline := generate.NewPipeline(generate.PipelineConfig{
		Assembler: docs.NewAssembler(store),
		Registry:  reg,
		Config:    cfg,
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	temperature := cfg.Generation.Temperature
	if cmd.Flags().Changed("temperature") {
		temperature = generateTemperature
	}
	maxTokens := cfg.Generation.MaxTokens
	if cmd.Flags().Changed("max-tokens") {
		maxTokens = generateMaxTokens
	}

	result := pipeline.Run(ctx, generate.Request{
		Requirement: requirement,
		UserID:      generateUserID,
		Provider:    generateProvider,
		Model:       generateModel,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})

	if result.Status == generate.StatusFailed {
		color.Red("Generation failed at %s stage: %s", result.Stage, result.ErrorMessage())
		if len(result.Tasks) > 0 {
			fmt.Println()
			fmt.Println("Rejected candidate (for debugging):")
			printTasksJSON(result.Tasks)
		}
		return fmt.Errorf("generation failed")
	}

	if generateJSON {
		printTasksJSON(result.Tasks)
		return nil
	}

	fmt.Println(renderTaskTree(result.Tasks))
	color.Green("Generated %d tasks (run %s)", result.Count, result.ID)
	return nil
}

func printTasksJSON(tasks any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		color.Red("Error encoding tasks: %v", err)
	}
}
