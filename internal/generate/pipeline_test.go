package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/flowgenhq/flowgen/internal/llm"
	"github.com/flowgenhq/flowgen/internal/registry"
)

// fakeClient returns a canned response and records the prompt it saw.
type fakeClient struct {
	response string
	err      error
	prompt   string
	opts     llm.Options
}

func (f *fakeClient) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	f.prompt = prompt
	f.opts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) ModelName() string { return "fake-model" }

// testPipeline builds a pipeline whose factory hands out the given client
// and records the settings it was called with.
func testPipeline(client llm.Client, factoryErr error) (*Pipeline, *llm.ProviderSettings) {
	var captured llm.ProviderSettings
	p := NewPipeline(PipelineConfig{
		ClientFactory: func(s llm.ProviderSettings) (llm.Client, error) {
			captured = s
			if factoryErr != nil {
				return nil, factoryErr
			}
			return client, nil
		},
	})
	return p, &captured
}

func TestPipelineSuccess(t *testing.T) {
	client := &fakeClient{response: `[
		{"id": "t1", "name": "rest_executor"},
		{"id": "t2", "name": "command_executor", "parent_id": "t1", "dependencies": ["t1"]}
	]`}
	p, _ := testPipeline(client, nil)

	res := p.Run(context.Background(), Request{Requirement: "fetch then process"})
	if res.Status != StatusCompleted {
		t.Fatalf("Status = %q, want completed (err: %v)", res.Status, res.Err)
	}
	if res.Count != 2 || len(res.Tasks) != 2 {
		t.Errorf("Count = %d, len(Tasks) = %d, want 2, 2", res.Count, len(res.Tasks))
	}
	if res.ID == "" {
		t.Error("ID is empty, want a run identifier")
	}
	if !strings.Contains(client.prompt, "fetch then process") {
		t.Error("prompt does not carry the requirement")
	}
}

func TestPipelineMissingRequirement(t *testing.T) {
	p, _ := testPipeline(&fakeClient{}, nil)

	res := p.Run(context.Background(), Request{})
	if res.Status != StatusFailed || res.Stage != StageInput {
		t.Fatalf("Status = %q, Stage = %q, want failed at input", res.Status, res.Stage)
	}
	if !errors.Is(res.Err, ErrMissingRequirement) {
		t.Errorf("Err = %v, want ErrMissingRequirement", res.Err)
	}
}

func TestPipelineClientCreationFailure(t *testing.T) {
	p, _ := testPipeline(nil, errors.New("no usable key"))

	res := p.Run(context.Background(), Request{Requirement: "r"})
	if res.Stage != StageClient {
		t.Fatalf("Stage = %q, want client", res.Stage)
	}
	if !strings.Contains(res.ErrorMessage(), "no usable key") {
		t.Errorf("ErrorMessage = %q, want wrapped factory error", res.ErrorMessage())
	}
}

func TestPipelineGenerationFailure(t *testing.T) {
	genErr := &llm.GenerationError{Provider: "openai", Err: errors.New("rate limited")}
	p, _ := testPipeline(&fakeClient{err: genErr}, nil)

	res := p.Run(context.Background(), Request{Requirement: "r"})
	if res.Stage != StageGeneration {
		t.Fatalf("Stage = %q, want generation", res.Stage)
	}
	var ge *llm.GenerationError
	if !errors.As(res.Err, &ge) {
		t.Errorf("Err = %T, want *llm.GenerationError", res.Err)
	}
}

func TestPipelineParseFailure(t *testing.T) {
	p, _ := testPipeline(&fakeClient{response: "no tasks for you"}, nil)

	res := p.Run(context.Background(), Request{Requirement: "r"})
	if res.Stage != StageParse {
		t.Fatalf("Stage = %q, want parse", res.Stage)
	}
	var pe *ParseError
	if !errors.As(res.Err, &pe) {
		t.Errorf("Err = %T, want *ParseError", res.Err)
	}
	if len(res.Tasks) != 0 {
		t.Errorf("Tasks = %v, want none on parse failure", res.Tasks)
	}
}

func TestPipelineValidationFailureKeepsCandidate(t *testing.T) {
	// Two roots: parses fine, fails validation. The rejected candidate
	// must ride along for diagnostics.
	p, _ := testPipeline(&fakeClient{response: `[
		{"id": "t1", "name": "rest_executor"},
		{"id": "t2", "name": "command_executor"}
	]`}, nil)

	res := p.Run(context.Background(), Request{Requirement: "r"})
	if res.Stage != StageValidation {
		t.Fatalf("Stage = %q, want validation", res.Stage)
	}
	if len(res.Tasks) != 2 {
		t.Errorf("len(Tasks) = %d, want rejected candidate preserved", len(res.Tasks))
	}
	if res.Count != 0 {
		t.Errorf("Count = %d, want 0 on failure", res.Count)
	}
}

func TestPipelineInjectsUserID(t *testing.T) {
	p, _ := testPipeline(&fakeClient{response: `[
		{"id": "t1", "name": "rest_executor"},
		{"id": "t2", "name": "command_executor", "parent_id": "t1", "user_id": "owner"}
	]`}, nil)

	res := p.Run(context.Background(), Request{Requirement: "r", UserID: "user123"})
	if res.Status != StatusCompleted {
		t.Fatalf("Status = %q, want completed (err: %v)", res.Status, res.Err)
	}
	if res.Tasks[0].UserID != "user123" {
		t.Errorf("Tasks[0].UserID = %q, want injected %q", res.Tasks[0].UserID, "user123")
	}
	if res.Tasks[1].UserID != "owner" {
		t.Errorf("Tasks[1].UserID = %q, want preserved %q", res.Tasks[1].UserID, "owner")
	}
}

func TestPipelinePassesGenerationOptions(t *testing.T) {
	client := &fakeClient{response: `[{"name": "rest_executor"}]`}
	p, _ := testPipeline(client, nil)

	res := p.Run(context.Background(), Request{Requirement: "r", Temperature: 0.2, MaxTokens: 1000})
	if res.Status != StatusCompleted {
		t.Fatalf("Status = %q, want completed (err: %v)", res.Status, res.Err)
	}
	if client.opts.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", client.opts.Temperature)
	}
	if client.opts.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want 1000", client.opts.MaxTokens)
	}
}

func TestPipelineCredentialsFromContext(t *testing.T) {
	client := &fakeClient{response: `[{"name": "rest_executor"}]`}
	p, captured := testPipeline(client, nil)

	ctx := WithCredentials(context.Background(), Credentials{
		APIKey:   "sk-request-scoped",
		Provider: "openai",
	})
	res := p.Run(ctx, Request{Requirement: "r"})
	if res.Status != StatusCompleted {
		t.Fatalf("Status = %q, want completed (err: %v)", res.Status, res.Err)
	}

	if captured.APIKey != "sk-request-scoped" {
		t.Errorf("factory APIKey = %q, want request-scoped key", captured.APIKey)
	}
	if captured.Provider != "openai" {
		t.Errorf("factory Provider = %q, want %q", captured.Provider, "openai")
	}
}

func TestPipelineRequestProviderBeatsCredentials(t *testing.T) {
	client := &fakeClient{response: `[{"name": "rest_executor"}]`}
	p, captured := testPipeline(client, nil)

	ctx := WithCredentials(context.Background(), Credentials{Provider: "openai"})
	p.Run(ctx, Request{Requirement: "r", Provider: "anthropic"})

	if captured.Provider != "anthropic" {
		t.Errorf("factory Provider = %q, want explicit request provider", captured.Provider)
	}
}

func TestPipelineRunInputs(t *testing.T) {
	client := &fakeClient{response: `[{"name": "rest_executor"}]`}
	p, _ := testPipeline(client, nil)

	res := p.RunInputs(context.Background(), map[string]any{"requirement": "fetch data"})
	if res.Status != StatusCompleted {
		t.Fatalf("Status = %q, want completed (err: %v)", res.Status, res.Err)
	}

	res = p.RunInputs(context.Background(), map[string]any{})
	if res.Stage != StageInput {
		t.Errorf("Stage = %q, want input for missing requirement", res.Stage)
	}
}

func TestPipelineCatalogInPrompt(t *testing.T) {
	reg := registry.New()
	if err := registry.RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins failed: %v", err)
	}

	client := &fakeClient{response: `[{"name": "rest_executor"}]`}
	p := NewPipeline(PipelineConfig{
		Registry: reg,
		ClientFactory: func(llm.ProviderSettings) (llm.Client, error) {
			return client, nil
		},
	})

	res := p.Run(context.Background(), Request{Requirement: "r"})
	if res.Status != StatusCompleted {
		t.Fatalf("Status = %q, want completed (err: %v)", res.Status, res.Err)
	}
	if !strings.Contains(client.prompt, "=== Available Executors ===") {
		t.Error("prompt missing executor catalog section")
	}
	if !strings.Contains(client.prompt, "- rest_executor:") {
		t.Error("prompt missing rest_executor entry")
	}
}

func TestPipelineRecoversPanic(t *testing.T) {
	p := NewPipeline(PipelineConfig{
		ClientFactory: func(llm.ProviderSettings) (llm.Client, error) {
			panic("boom")
		},
	})

	res := p.Run(context.Background(), Request{Requirement: "r"})
	if res.Status != StatusFailed || res.Stage != StageInternal {
		t.Fatalf("Status = %q, Stage = %q, want failed at internal", res.Status, res.Stage)
	}
	if !strings.Contains(res.ErrorMessage(), "boom") {
		t.Errorf("ErrorMessage = %q, want panic value surfaced", res.ErrorMessage())
	}
}
