package provider

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/foundry-9/quilltap-providers/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:   "openrouter provider with defaults",
			config: Config{Type: ProviderTypeOpenRouter, Logger: zerolog.Nop()},
		},
		{
			name: "openrouter provider with custom base URL",
			config: Config{
				Type:    ProviderTypeOpenRouter,
				BaseURL: "https://gateway.internal/api/v1",
				Logger:  zerolog.Nop(),
			},
		},
		{
			name:   "openai provider",
			config: Config{Type: ProviderTypeOpenAI, Logger: zerolog.Nop()},
		},
		{
			name:        "unknown provider type",
			config:      Config{Type: ProviderType("unknown")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if p != nil {
					t.Error("expected nil provider on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var _ model.Provider = p
		})
	}
}

func TestFactoryReturnsConcreteTypes(t *testing.T) {
	p, err := NewProvider(Config{Type: ProviderTypeOpenRouter, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*OpenRouterProvider); !ok {
		t.Errorf("expected *OpenRouterProvider, got %T", p)
	}

	p, err = NewProvider(Config{Type: ProviderTypeOpenAI, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Errorf("expected *OpenAIProvider, got %T", p)
	}
}

func TestMapProviderIDToType(t *testing.T) {
	tests := []struct {
		id   string
		want ProviderType
	}{
		{id: "openrouter", want: ProviderTypeOpenRouter},
		{id: "openai", want: ProviderTypeOpenAI},
		{id: "something-else", want: ProviderType("something-else")},
	}

	for _, tt := range tests {
		if got := MapProviderIDToType(tt.id); got != tt.want {
			t.Errorf("MapProviderIDToType(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
