package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flowgenhq/flowgen/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and manage flowgen configuration",
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		fmt.Printf("User config:    %s\n", config.GetUserConfigPath())
		if project := config.GetProjectConfigPath(); project != "" {
			fmt.Printf("Project config: %s\n", project)
		}
		fmt.Println()

		fmt.Printf("llm.provider:           %s\n", orDefault(cfg.LLM.Provider, "(auto)"))
		fmt.Printf("llm.model:              %s\n", orDefault(cfg.LLM.Model, "(provider default)"))
		fmt.Printf("anthropic.api_key:      %s [%s]\n",
			config.MaskAPIKey(cfg.Anthropic.APIKey), config.APIKeySourceFor(cfg, "anthropic"))
		fmt.Printf("openai.api_key:         %s [%s]\n",
			config.MaskAPIKey(cfg.OpenAI.APIKey), config.APIKeySourceFor(cfg, "openai"))
		fmt.Printf("bedrock.enabled:        %v\n", cfg.Bedrock.Enabled)
		if cfg.Bedrock.Enabled {
			fmt.Printf("bedrock.region:         %s\n", cfg.Bedrock.Region)
			fmt.Printf("bedrock.profile:        %s\n", cfg.Bedrock.Profile)
		}
		fmt.Printf("docs.dir:               %s\n", cfg.Docs.Dir)
		fmt.Printf("generation.temperature: %g\n", cfg.Generation.Temperature)
		fmt.Printf("generation.max_tokens:  %d\n", cfg.Generation.MaxTokens)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in the user config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		switch key {
		case "llm.provider":
			cfg.LLM.Provider = value
		case "llm.model":
			cfg.LLM.Model = value
		case "anthropic.api_key":
			cfg.Anthropic.APIKey = value
		case "openai.api_key":
			cfg.OpenAI.APIKey = value
		case "bedrock.enabled":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("bedrock.enabled must be true or false")
			}
			cfg.Bedrock.Enabled = enabled
		case "bedrock.region":
			cfg.Bedrock.Region = value
		case "bedrock.profile":
			cfg.Bedrock.Profile = value
		case "docs.dir":
			cfg.Docs.Dir = value
		case "generation.temperature":
			t, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("generation.temperature must be a number")
			}
			cfg.Generation.Temperature = t
		case "generation.max_tokens":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("generation.max_tokens must be an integer")
			}
			cfg.Generation.MaxTokens = n
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		color.Green("Set %s in %s", key, config.GetUserConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configSetCmd)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
