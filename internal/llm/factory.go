package llm

import (
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
)

// Provider names accepted by the factory.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// ProviderEnvVar selects the default provider when nothing else does.
const ProviderEnvVar = "FLOWGEN_LLM_PROVIDER"

// ProviderSettings carries everything the factory needs to build a client.
// Fields left empty fall back to environment variables inside the
// provider-specific constructors.
type ProviderSettings struct {
	// Provider is "anthropic" or "openai". Empty means resolve from the
	// environment (see ResolveProvider).
	Provider string
	// Model is the provider-specific model name. Empty uses the provider
	// default.
	Model string
	// APIKey is a request-scoped credential, if one was supplied.
	APIKey string
	// UseAWSBedrock routes Anthropic calls through AWS Bedrock.
	UseAWSBedrock bool
	// AWSRegion is the Bedrock region.
	AWSRegion string
	// AWSProfile is the optional AWS profile for Bedrock.
	AWSProfile string
}

// ResolveProvider picks a provider when none was requested explicitly:
// the FLOWGEN_LLM_PROVIDER environment variable wins, then whichever
// provider has a key in the environment, then Anthropic.
func ResolveProvider(requested string) string {
	if requested != "" {
		return requested
	}
	if env := os.Getenv(ProviderEnvVar); env != "" {
		return env
	}
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return ProviderAnthropic
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return ProviderOpenAI
	}
	return ProviderAnthropic
}

// New creates a generation client for the resolved provider. Failure here
// means no usable provider or credential, not a generation failure.
func New(s ProviderSettings) (Client, error) {
	provider := ResolveProvider(s.Provider)

	switch provider {
	case ProviderAnthropic:
		return NewAnthropicClient(AnthropicConfig{
			Model:         anthropic.Model(s.Model),
			APIKey:        s.APIKey,
			UseAWSBedrock: s.UseAWSBedrock,
			AWSRegion:     s.AWSRegion,
			AWSProfile:    s.AWSProfile,
		})
	case ProviderOpenAI:
		return NewOpenAIClient(OpenAIConfig{
			Model:  s.Model,
			APIKey: s.APIKey,
		})
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (supported: %s, %s)",
			provider, ProviderAnthropic, ProviderOpenAI)
	}
}
