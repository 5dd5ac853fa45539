package provider

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foundry-9/quilltap-providers/model"
)

// Config holds provider-specific configuration for the factory. API keys
// are not part of it: they are supplied per call through the Provider
// interface.
type Config struct {
	Type    ProviderType
	BaseURL string
	Logger  zerolog.Logger
}

// NewProvider creates a provider facade based on configuration.
//
// This is the centralized factory for creating any provider type; it
// dispatches to the matching constructor on Config.Type.
func NewProvider(cfg Config) (model.Provider, error) {
	switch cfg.Type {
	case ProviderTypeOpenRouter:
		return NewOpenRouterProvider(cfg.BaseURL, cfg.Logger), nil
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.Logger), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// MapProviderIDToType converts a user-facing provider ID to a factory
// ProviderType. Unknown IDs pass through as-is and the factory errors.
func MapProviderIDToType(id string) ProviderType {
	switch id {
	case "openrouter":
		return ProviderTypeOpenRouter
	case "openai":
		return ProviderTypeOpenAI
	default:
		return ProviderType(id)
	}
}
