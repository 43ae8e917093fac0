package registry

// RegisterBuiltins registers the executors the execution engine ships
// with. Call once from the process bootstrap before formatting catalogs.
func RegisterBuiltins(r *Registry) error {
	builtins := []ExecutorInfo{
		{
			ID:          "rest_executor",
			Name:        "REST Executor",
			Description: "Execute HTTP requests against REST APIs",
			Schema: InputSchema{Properties: []SchemaProperty{
				{Name: "url", Type: "string", Description: "Target URL for the request", Required: true},
				{Name: "method", Type: "string", Description: "HTTP method (GET, POST, PUT, DELETE)", Required: true},
				{Name: "headers", Type: "object", Description: "Request headers"},
				{Name: "body", Type: "object", Description: "Request body for POST/PUT"},
			}},
		},
		{
			ID:          "command_executor",
			Name:        "Command Executor",
			Description: "Run shell commands and capture their output",
			Schema: InputSchema{Properties: []SchemaProperty{
				{Name: "command", Type: "string", Description: "Full command line to execute", Required: true},
				{Name: "working_dir", Type: "string", Description: "Directory to run the command in"},
				{Name: "timeout", Type: "integer", Description: "Timeout in seconds"},
			}},
		},
		{
			ID:          "delay_executor",
			Name:        "Delay Executor",
			Description: "Pause the workflow for a fixed duration",
			Schema: InputSchema{Properties: []SchemaProperty{
				{Name: "seconds", Type: "number", Description: "Seconds to wait", Required: true},
			}},
		},
		{
			ID:          "generate_executor",
			Name:        "Generate Executor",
			Description: "Generate task tree JSON arrays from natural language requirements using an LLM",
			Schema: InputSchema{Properties: []SchemaProperty{
				{Name: "requirement", Type: "string", Description: "Natural language requirement describing the task tree to generate", Required: true},
				{Name: "user_id", Type: "string", Description: "User ID applied to generated tasks"},
				{Name: "llm_provider", Type: "string", Description: "LLM provider (openai or anthropic)"},
				{Name: "llm_model", Type: "string", Description: "Model name (provider default when omitted)"},
				{Name: "temperature", Type: "number", Description: "Sampling temperature (default 0.7)"},
				{Name: "max_tokens", Type: "integer", Description: "Maximum generation tokens (default 4000)"},
			}},
		},
	}

	for _, info := range builtins {
		if err := r.Register(info); err != nil {
			return err
		}
	}
	return nil
}
