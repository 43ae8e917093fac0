// Package llm provides generation clients for LLM providers. A client is
// a pure capability: given a prompt and generation options it returns the
// model's text or fails. Retry policy and timeouts belong to the caller.
package llm

import (
	"context"
	"fmt"
)

// Options control a single generation call.
type Options struct {
	// Temperature is the sampling temperature.
	Temperature float64
	// MaxTokens caps the generated output length.
	MaxTokens int
}

// Client is the capability interface the generation pipeline depends on.
type Client interface {
	// Generate sends the prompt and returns the model's text response.
	// The context controls cancellation of the underlying network call.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	// ModelName returns the configured model identifier.
	ModelName() string
}

// GenerationError wraps a provider-side or transport failure.
type GenerationError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}
