// Package config provides API key management utilities.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoAPIKey is returned when no API key is configured for a provider.
var ErrNoAPIKey = errors.New("no API key configured")

// APIKeyFor returns the API key for the given provider.
// It checks in order: environment variable, config file.
func APIKeyFor(cfg *Config, provider string) (string, error) {
	switch provider {
	case "anthropic":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			return key, nil
		}
		if cfg != nil {
			if key := usableKey(cfg.Anthropic.APIKey); key != "" {
				return key, nil
			}
		}
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key, nil
		}
		if cfg != nil {
			if key := usableKey(cfg.OpenAI.APIKey); key != "" {
				return key, nil
			}
		}
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}

	return "", fmt.Errorf("%w for provider %s", ErrNoAPIKey, provider)
}

// usableKey expands env references and rejects unresolved ${VAR} values.
func usableKey(key string) string {
	key = os.ExpandEnv(key)
	if key == "" || strings.HasPrefix(key, "${") {
		return ""
	}
	return key
}

// MaskAPIKey returns a masked version of the API key for display.
// Shows the first 7 characters and last 4 characters.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}

	if len(key) <= 15 {
		return "***"
	}

	return key[:7] + "..." + key[len(key)-4:]
}

// KeySource represents where an API key was loaded from.
type KeySource string

const (
	KeySourceEnv    KeySource = "environment"
	KeySourceConfig KeySource = "config_file"
	KeySourceNone   KeySource = "none"
)

// APIKeySourceFor returns where the API key for a provider was sourced
// from.
func APIKeySourceFor(cfg *Config, provider string) KeySource {
	switch provider {
	case "anthropic":
		if os.Getenv("ANTHROPIC_API_KEY") != "" {
			return KeySourceEnv
		}
		if cfg != nil && usableKey(cfg.Anthropic.APIKey) != "" {
			return KeySourceConfig
		}
	case "openai":
		if os.Getenv("OPENAI_API_KEY") != "" {
			return KeySourceEnv
		}
		if cfg != nil && usableKey(cfg.OpenAI.APIKey) != "" {
			return KeySourceConfig
		}
	}
	return KeySourceNone
}
