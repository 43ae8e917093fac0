// Package config handles configuration loading and management for Flowgen.
// It supports XDG config paths, project-level overrides, and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for Flowgen.
type Config struct {
	LLM        LLMConfig        `mapstructure:"llm"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Bedrock    BedrockConfig    `mapstructure:"bedrock"`
	Docs       DocsConfig       `mapstructure:"docs"`
	Generation GenerationConfig `mapstructure:"generation"`
	Prompt     PromptConfig     `mapstructure:"prompt"`
}

// LLMConfig selects the default provider and model.
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// BedrockConfig holds AWS Bedrock settings for the Anthropic provider.
type BedrockConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// DocsConfig locates the reference documentation used as prompt context.
type DocsConfig struct {
	Dir string `mapstructure:"dir"`
}

// GenerationConfig holds default generation parameters.
type GenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// PromptConfig holds the size budgets for prompt assembly.
type PromptConfig struct {
	// MaxCharsPerSection bounds each documentation section.
	MaxCharsPerSection int `mapstructure:"max_chars_per_section"`
	// ContextBudget bounds the combined documentation block.
	ContextBudget int `mapstructure:"context_budget"`
	// CatalogBudget bounds the formatted executor catalog.
	CatalogBudget int `mapstructure:"catalog_budget"`
	// MaxCatalogEntries bounds how many executors the catalog shows.
	MaxCatalogEntries int `mapstructure:"max_catalog_entries"`
	// MaxSchemaProps bounds schema properties shown per executor.
	MaxSchemaProps int `mapstructure:"max_schema_props"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables. Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, OPENAI_API_KEY, FLOWGEN_*)
// 2. Project config (.flowgen.yaml in current directory or a parent)
// 3. User config (~/.config/flowgen/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("llm.provider", "FLOWGEN_LLM_PROVIDER")
	v.BindEnv("llm.model", "FLOWGEN_LLM_MODEL")
	v.BindEnv("docs.dir", "FLOWGEN_DOCS_DIR")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.OpenAI.APIKey = expandEnv(cfg.OpenAI.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.OpenAI.APIKey = expandEnv(cfg.OpenAI.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("llm.provider", cfg.LLM.Provider)
	v.Set("llm.model", cfg.LLM.Model)
	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("openai.api_key", cfg.OpenAI.APIKey)
	v.Set("bedrock.enabled", cfg.Bedrock.Enabled)
	v.Set("bedrock.region", cfg.Bedrock.Region)
	v.Set("bedrock.profile", cfg.Bedrock.Profile)
	v.Set("docs.dir", cfg.Docs.Dir)
	v.Set("generation.temperature", cfg.Generation.Temperature)
	v.Set("generation.max_tokens", cfg.Generation.MaxTokens)
	v.Set("prompt.max_chars_per_section", cfg.Prompt.MaxCharsPerSection)
	v.Set("prompt.context_budget", cfg.Prompt.ContextBudget)
	v.Set("prompt.catalog_budget", cfg.Prompt.CatalogBudget)
	v.Set("prompt.max_catalog_entries", cfg.Prompt.MaxCatalogEntries)
	v.Set("prompt.max_schema_props", cfg.Prompt.MaxSchemaProps)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it
// exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("openai.api_key", "")

	v.SetDefault("bedrock.enabled", false)
	v.SetDefault("bedrock.region", "")
	v.SetDefault("bedrock.profile", "")

	v.SetDefault("docs.dir", "docs")

	v.SetDefault("generation.temperature", 0.7)
	v.SetDefault("generation.max_tokens", 4000)

	v.SetDefault("prompt.max_chars_per_section", 1500)
	v.SetDefault("prompt.context_budget", 2000)
	v.SetDefault("prompt.catalog_budget", 3000)
	v.SetDefault("prompt.max_catalog_entries", 15)
	v.SetDefault("prompt.max_schema_props", 3)
}

// getUserConfigDir returns the XDG config directory for Flowgen.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "flowgen")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "flowgen")
	}
	return filepath.Join(home, ".config", "flowgen")
}

// findProjectConfig searches for .flowgen.yaml in the current directory
// and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".flowgen.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Docs: DocsConfig{Dir: "docs"},
		Generation: GenerationConfig{
			Temperature: 0.7,
			MaxTokens:   4000,
		},
		Prompt: PromptConfig{
			MaxCharsPerSection: 1500,
			ContextBudget:      2000,
			CatalogBudget:      3000,
			MaxCatalogEntries:  15,
			MaxSchemaProps:     3,
		},
	}
}
