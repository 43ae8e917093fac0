// Package generate turns a free-text requirement into a validated task
// tree by prompting an LLM and strictly validating its output. One call
// means one prompt, one generation, one parse, one validation pass; the
// pipeline holds no mutable state across runs.
package generate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flowgenhq/flowgen/internal/config"
	"github.com/flowgenhq/flowgen/internal/docs"
	"github.com/flowgenhq/flowgen/internal/llm"
	"github.com/flowgenhq/flowgen/internal/registry"
	"github.com/flowgenhq/flowgen/internal/tasktree"
)

// ClientFactory builds a generation client from resolved settings.
// Replaceable in tests.
type ClientFactory func(llm.ProviderSettings) (llm.Client, error)

// Pipeline wires the context assembler, catalog formatter, prompt
// composer, generation client, extractor, and validator together.
type Pipeline struct {
	assembler *docs.Assembler
	registry  *registry.Registry
	cfg       *config.Config
	logger    *DebugLogger
	newClient ClientFactory
}

// PipelineConfig contains the collaborators a Pipeline needs.
type PipelineConfig struct {
	// Assembler provides truncated documentation context.
	Assembler *docs.Assembler
	// Registry supplies the executor catalog.
	Registry *registry.Registry
	// Config supplies budgets and provider defaults. Nil uses defaults.
	Config *config.Config
	// Logger receives debug output. Nil means no logging.
	Logger *DebugLogger
	// ClientFactory overrides client construction, mainly for tests.
	ClientFactory ClientFactory
}

// NewPipeline creates a generation pipeline.
func NewPipeline(pc PipelineConfig) *Pipeline {
	cfg := pc.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := pc.Logger
	if logger == nil {
		logger = NopLogger()
	}
	factory := pc.ClientFactory
	if factory == nil {
		factory = llm.New
	}

	return &Pipeline{
		assembler: pc.Assembler,
		registry:  pc.Registry,
		cfg:       cfg,
		logger:    logger,
		newClient: factory,
	}
}

// RunInputs parses the flat input map from the invocation boundary and
// runs the pipeline. This is the entry point the execution engine calls.
func (p *Pipeline) RunInputs(ctx context.Context, inputs map[string]any) *Result {
	req, err := ParseInputs(inputs)
	if err != nil {
		return failure(uuid.New().String(), StageInput, err, nil)
	}
	return p.Run(ctx, req)
}

// Run executes one generation request. It never panics: any internal
// failure is converted into a failed Result, because the pipeline runs
// inside a task-execution context that records outcomes rather than
// crashing.
func (p *Pipeline) Run(ctx context.Context, req Request) (res *Result) {
	id := uuid.New().String()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Log("[%s] panic recovered: %v", id, r)
			res = failure(id, StageInternal, fmt.Errorf("unexpected error: %v", r), nil)
		}
	}()

	if req.Requirement == "" {
		return failure(id, StageInput, ErrMissingRequirement, nil)
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}

	p.logger.Log("[%s] generating task tree for requirement: %s", id, head(req.Requirement, 100))

	client, err := p.createClient(ctx, req)
	if err != nil {
		p.logger.Log("[%s] client creation failed: %v", id, err)
		return failure(id, StageClient, fmt.Errorf("create LLM client: %w", err), nil)
	}

	prompt := p.buildPrompt(id, req)

	raw, err := client.Generate(ctx, prompt, llm.Options{
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		p.logger.Log("[%s] generation failed: %v", id, err)
		return failure(id, StageGeneration, err, nil)
	}

	tasks, err := ExtractTasks(raw)
	if err != nil {
		p.logger.Log("[%s] parse failed: %v", id, err)
		return failure(id, StageParse, err, nil)
	}

	if err := tasktree.Validate(tasks); err != nil {
		p.logger.Log("[%s] validation failed: %v", id, err)
		// The unvalidated candidate rides along for debugging only.
		return failure(id, StageValidation, err, tasks)
	}

	if req.UserID != "" {
		tasktree.InjectUserID(tasks, req.UserID)
	}

	p.logger.Log("[%s] generated %d tasks (model=%s)", id, len(tasks), client.ModelName())
	return &Result{
		ID:     id,
		Status: StatusCompleted,
		Tasks:  tasks,
		Count:  len(tasks),
	}
}

// createClient resolves provider settings from the request, the
// request-scoped credentials on the context, and ambient configuration,
// in that order, then builds the client. The credential lookup never
// blocks and absence is not an error.
func (p *Pipeline) createClient(ctx context.Context, req Request) (llm.Client, error) {
	creds, hasCreds := CredentialsFromContext(ctx)

	provider := req.Provider
	if provider == "" && hasCreds {
		provider = creds.Provider
	}
	if provider == "" {
		provider = p.cfg.LLM.Provider
	}
	provider = llm.ResolveProvider(provider)

	model := req.Model
	if model == "" {
		model = p.cfg.LLM.Model
	}

	apiKey := ""
	if hasCreds {
		apiKey = creds.APIKey
	}
	if apiKey == "" {
		if key, err := config.APIKeyFor(p.cfg, provider); err == nil {
			apiKey = key
		}
	}

	return p.newClient(llm.ProviderSettings{
		Provider:      provider,
		Model:         model,
		APIKey:        apiKey,
		UseAWSBedrock: p.cfg.Bedrock.Enabled,
		AWSRegion:     p.cfg.Bedrock.Region,
		AWSProfile:    p.cfg.Bedrock.Profile,
	})
}

// buildPrompt assembles the documentation context and executor catalog
// under their budgets and composes the final prompt.
func (p *Pipeline) buildPrompt(id string, req Request) string {
	contextBlock := ""
	if p.assembler != nil {
		combined, missing := p.assembler.Assemble(p.cfg.Prompt.MaxCharsPerSection)
		for _, name := range missing {
			p.logger.Log("[%s] documentation %q not found, skipped", id, name)
		}
		contextBlock = docs.Truncate(combined, p.cfg.Prompt.ContextBudget)
	}

	catalogBlock := ""
	if p.registry != nil {
		formatted := p.registry.FormatForPrompt(
			p.cfg.Prompt.MaxCatalogEntries,
			p.cfg.Prompt.MaxSchemaProps,
		)
		catalogBlock = docs.Truncate(formatted, p.cfg.Prompt.CatalogBudget)
	}

	return BuildPrompt(req.Requirement, req.UserID, contextBlock, catalogBlock)
}

// InputSchema describes the pipeline's own input parameters, so the
// generate capability can be listed in the executor catalog it formats.
func InputSchema() registry.InputSchema {
	return registry.InputSchema{Properties: []registry.SchemaProperty{
		{Name: "requirement", Type: "string", Description: "Natural language requirement describing the task tree to generate", Required: true},
		{Name: "user_id", Type: "string", Description: "User ID applied to generated tasks"},
		{Name: "llm_provider", Type: "string", Description: "LLM provider (openai or anthropic)"},
		{Name: "llm_model", Type: "string", Description: "Model name (provider default when omitted)"},
		{Name: "temperature", Type: "number", Description: "Sampling temperature (default 0.7)"},
		{Name: "max_tokens", Type: "integer", Description: "Maximum generation tokens (default 4000)"},
	}}
}

// head bounds log excerpts of user input.
func head(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
