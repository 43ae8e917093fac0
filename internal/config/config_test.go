package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPath(t *testing.T) {
	content := `llm:
  provider: openai
  model: gpt-4o-mini
openai:
  api_key: sk-from-file
docs:
  dir: /srv/docs
generation:
  temperature: 0.3
  max_tokens: 2000
prompt:
  context_budget: 1000
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.LLM.Provider != "openai" {
		t.Errorf("LLM.Provider = %q, want %q", cfg.LLM.Provider, "openai")
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM.Model = %q, want %q", cfg.LLM.Model, "gpt-4o-mini")
	}
	if cfg.OpenAI.APIKey != "sk-from-file" {
		t.Errorf("OpenAI.APIKey = %q, want %q", cfg.OpenAI.APIKey, "sk-from-file")
	}
	if cfg.Docs.Dir != "/srv/docs" {
		t.Errorf("Docs.Dir = %q, want %q", cfg.Docs.Dir, "/srv/docs")
	}
	if cfg.Generation.Temperature != 0.3 {
		t.Errorf("Generation.Temperature = %v, want 0.3", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 2000 {
		t.Errorf("Generation.MaxTokens = %d, want 2000", cfg.Generation.MaxTokens)
	}
	if cfg.Prompt.ContextBudget != 1000 {
		t.Errorf("Prompt.ContextBudget = %d, want 1000", cfg.Prompt.ContextBudget)
	}
}

func TestLoadFromPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  provider: anthropic\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Generation.Temperature != 0.7 {
		t.Errorf("Generation.Temperature = %v, want default 0.7", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 4000 {
		t.Errorf("Generation.MaxTokens = %d, want default 4000", cfg.Generation.MaxTokens)
	}
	if cfg.Prompt.MaxCharsPerSection != 1500 {
		t.Errorf("Prompt.MaxCharsPerSection = %d, want default 1500", cfg.Prompt.MaxCharsPerSection)
	}
	if cfg.Prompt.ContextBudget != 2000 {
		t.Errorf("Prompt.ContextBudget = %d, want default 2000", cfg.Prompt.ContextBudget)
	}
	if cfg.Prompt.CatalogBudget != 3000 {
		t.Errorf("Prompt.CatalogBudget = %d, want default 3000", cfg.Prompt.CatalogBudget)
	}
	if cfg.Prompt.MaxCatalogEntries != 15 {
		t.Errorf("Prompt.MaxCatalogEntries = %d, want default 15", cfg.Prompt.MaxCatalogEntries)
	}
	if cfg.Prompt.MaxSchemaProps != 3 {
		t.Errorf("Prompt.MaxSchemaProps = %d, want default 3", cfg.Prompt.MaxSchemaProps)
	}
	if cfg.Docs.Dir != "docs" {
		t.Errorf("Docs.Dir = %q, want default %q", cfg.Docs.Dir, "docs")
	}
}

func TestLoadFromPathExpandsEnvInKeys(t *testing.T) {
	t.Setenv("TEST_FLOWGEN_KEY", "sk-expanded")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("anthropic:\n  api_key: ${TEST_FLOWGEN_KEY}\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Anthropic.APIKey != "sk-expanded" {
		t.Errorf("Anthropic.APIKey = %q, want %q", cfg.Anthropic.APIKey, "sk-expanded")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Generation.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 4000 {
		t.Errorf("MaxTokens = %d, want 4000", cfg.Generation.MaxTokens)
	}
	if cfg.Prompt.MaxCatalogEntries != 15 {
		t.Errorf("MaxCatalogEntries = %d, want 15", cfg.Prompt.MaxCatalogEntries)
	}
}
