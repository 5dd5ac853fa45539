// Package provider implements the QuillTap provider plugins.
//
// Each vendor (OpenRouter, OpenAI) is exposed through two surfaces:
//
//   - a facade implementing model.Provider (SendMessage, StreamMessage,
//     ValidateAPIKey, AvailableModels, GenerateImage)
//   - a model.Plugin descriptor carrying static metadata, capabilities and
//     the factory functions the host registry consumes
//
// Both vendors ride the official OpenAI Go SDK; OpenRouter's API is
// OpenAI-compatible and only differs in base URL, attribution headers and a
// few request quirks. All vendor-specific field names stay inside this
// package: hosts only ever see the types from the model package.
//
// # Usage
//
//	p := provider.NewOpenRouterProvider("", logger)
//	stream, err := p.StreamMessage(ctx, params, apiKey)
//	if err != nil {
//	    // handle error
//	}
//	defer stream.Close()
//	for stream.Next() {
//	    chunk := stream.Current()
//	    ...
//	}
package provider

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeOpenAI     ProviderType = "openai"
)
