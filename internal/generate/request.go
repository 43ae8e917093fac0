package generate

import (
	"errors"
	"fmt"
	"strings"
)

// Default generation parameters, applied when the caller supplies none.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4000
)

// ErrMissingRequirement indicates the input map carried no requirement.
var ErrMissingRequirement = errors.New("requirement is required in inputs")

// Request is one generation request.
type Request struct {
	// Requirement is the natural-language description of the task tree.
	Requirement string
	// UserID, when set, is injected into generated tasks after validation.
	UserID string
	// Provider optionally overrides the configured LLM provider.
	Provider string
	// Model optionally overrides the provider's default model.
	Model string
	// Temperature is the sampling temperature.
	Temperature float64
	// MaxTokens caps the generated output length.
	MaxTokens int
}

// ParseInputs converts the flat key-value map arriving from the task
// invocation boundary into a Request, applying defaults. Recognized keys:
// requirement, user_id, llm_provider, llm_model, temperature, max_tokens.
func ParseInputs(inputs map[string]any) (Request, error) {
	req := Request{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}

	requirement, _ := inputs["requirement"].(string)
	if strings.TrimSpace(requirement) == "" {
		return req, ErrMissingRequirement
	}
	req.Requirement = requirement

	if v, ok := inputs["user_id"].(string); ok {
		req.UserID = v
	}
	if v, ok := inputs["llm_provider"].(string); ok {
		req.Provider = v
	}
	if v, ok := inputs["llm_model"].(string); ok {
		req.Model = v
	}

	if raw, ok := inputs["temperature"]; ok {
		t, err := toFloat(raw)
		if err != nil {
			return req, fmt.Errorf("invalid temperature: %w", err)
		}
		req.Temperature = t
	}
	if raw, ok := inputs["max_tokens"]; ok {
		n, err := toInt(raw)
		if err != nil {
			return req, fmt.Errorf("invalid max_tokens: %w", err)
		}
		req.MaxTokens = n
	}

	return req, nil
}

// toFloat accepts the numeric types JSON decoding and Go callers produce.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
