package config

// Default returns the out-of-the-box configuration: both cloud providers
// present but disabled until the user supplies a key.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Providers: []ProviderConfig{
			{
				ID:        "openrouter",
				Name:      "OpenRouter",
				Enabled:   false,
				BaseURL:   "https://openrouter.ai/api/v1",
				APIKeyEnv: "OPENROUTER_API_KEY",
			},
			{
				ID:        "openai",
				Name:      "OpenAI",
				Enabled:   false,
				BaseURL:   "https://api.openai.com/v1",
				APIKeyEnv: "OPENAI_API_KEY",
			},
		},
	}
}
