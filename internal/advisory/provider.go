// Package advisory generates crop recommendations for a farmer's land
// profile via a configurable LLM provider. The advisory layer is
// best-effort: when the provider is absent or misbehaves, a fixed set
// of widely grown crops is returned instead.
package advisory

import (
	"context"
	"fmt"
	"strings"
)

// Provider is a text completion backend.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the raw model output.
	Complete(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds advisory provider configuration.
type Config struct {
	// Provider name: "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom or proxy endpoints
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// NewProvider creates a provider from configuration. An empty provider
// name disables the advisory layer and returns nil, nil.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown advisory provider: %s (supported: openai)", config.Provider)
	}
}
