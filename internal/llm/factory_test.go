package llm

import "testing"

func clearProviderEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ProviderEnvVar, "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
}

func TestResolveProviderExplicitWins(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv(ProviderEnvVar, "anthropic")

	if got := ResolveProvider("openai"); got != ProviderOpenAI {
		t.Errorf("ResolveProvider = %q, want %q", got, ProviderOpenAI)
	}
}

func TestResolveProviderEnvVar(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv(ProviderEnvVar, "openai")

	if got := ResolveProvider(""); got != ProviderOpenAI {
		t.Errorf("ResolveProvider = %q, want %q", got, ProviderOpenAI)
	}
}

func TestResolveProviderFromKeys(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	if got := ResolveProvider(""); got != ProviderOpenAI {
		t.Errorf("ResolveProvider = %q, want %q", got, ProviderOpenAI)
	}

	// An Anthropic key takes precedence over an OpenAI key.
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	if got := ResolveProvider(""); got != ProviderAnthropic {
		t.Errorf("ResolveProvider = %q, want %q", got, ProviderAnthropic)
	}
}

func TestResolveProviderDefault(t *testing.T) {
	clearProviderEnv(t)

	if got := ResolveProvider(""); got != ProviderAnthropic {
		t.Errorf("ResolveProvider = %q, want %q", got, ProviderAnthropic)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	clearProviderEnv(t)

	if _, err := New(ProviderSettings{Provider: "cohere"}); err == nil {
		t.Error("expected error for unknown provider, got nil")
	}
}

func TestNewOpenAIFromSettings(t *testing.T) {
	clearProviderEnv(t)

	client, err := New(ProviderSettings{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if client.ModelName() != "gpt-4o-mini" {
		t.Errorf("ModelName = %q, want %q", client.ModelName(), "gpt-4o-mini")
	}
}

func TestTokenTracker(t *testing.T) {
	tracker := NewTokenTracker()
	tracker.Add(100, 50)
	tracker.Add(200, 75)

	in, out := tracker.Total()
	if in != 300 || out != 125 {
		t.Errorf("Total = %d, %d, want 300, 125", in, out)
	}
	if tracker.Calls() != 2 {
		t.Errorf("Calls = %d, want 2", tracker.Calls())
	}

	tracker.Reset()
	in, out = tracker.Total()
	if in != 0 || out != 0 {
		t.Errorf("Total after Reset = %d, %d, want 0, 0", in, out)
	}
}
