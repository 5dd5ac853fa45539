package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"

	"github.com/foundry-9/quilltap-providers/model"
)

const (
	openRouterDefaultBaseURL = "https://openrouter.ai/api/v1"

	// App attribution headers; OpenRouter uses these for rankings.
	openRouterReferer = "https://quilltap.app"
	openRouterTitle   = "QuillTap"
)

var openRouterMimeTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// OpenRouterProvider implements model.Provider against OpenRouter's
// OpenAI-compatible API using OpenAI's official Go SDK.
type OpenRouterProvider struct {
	baseURL string
	log     zerolog.Logger
}

// NewOpenRouterProvider creates an OpenRouter provider facade. An empty
// baseURL selects the public OpenRouter endpoint.
func NewOpenRouterProvider(baseURL string, log zerolog.Logger) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = openRouterDefaultBaseURL
	}
	return &OpenRouterProvider{baseURL: baseURL, log: log}
}

// client builds a fresh vendor client for one call. Each call gets its own
// client, so concurrent calls with different keys never share state.
func (p *OpenRouterProvider) client(apiKey string) openai.Client {
	return openai.NewClient(
		option.WithBaseURL(p.baseURL),
		option.WithAPIKey(apiKey),
		option.WithHeader("HTTP-Referer", openRouterReferer),
		option.WithHeader("X-Title", openRouterTitle),
	)
}

// SendMessage implements model.Provider.SendMessage.
func (p *OpenRouterProvider) SendMessage(ctx context.Context, params model.Params, apiKey string) (*model.Response, error) {
	messages, attachments := FormatMessages(params.Messages, openRouterMimeTypes)
	req, opts := buildChatParams(params, messages, false, true)

	client := p.client(apiKey)
	completion, err := client.Chat.Completions.New(ctx, req, opts...)
	if err != nil {
		return nil, fmt.Errorf("OpenRouter chat completion failed: %w", err)
	}
	return mapCompletion(completion, attachments)
}

// StreamMessage implements model.Provider.StreamMessage.
func (p *OpenRouterProvider) StreamMessage(ctx context.Context, params model.Params, apiKey string) (*model.ChunkStream, error) {
	messages, attachments := FormatMessages(params.Messages, openRouterMimeTypes)
	req, opts := buildChatParams(params, messages, true, true)

	client := p.client(apiKey)
	stream := client.Chat.Completions.NewStreaming(ctx, req, opts...)
	if stream == nil {
		return nil, fmt.Errorf("expected streaming response from provider")
	}
	return newChunkStream(stream, attachments, "OpenRouter streaming error"), nil
}

// ValidateAPIKey implements model.Provider.ValidateAPIKey. Failures are
// logged and mapped to false, never propagated.
func (p *OpenRouterProvider) ValidateAPIKey(ctx context.Context, apiKey string) bool {
	client := p.client(apiKey)
	if _, err := client.Models.List(ctx); err != nil {
		p.log.Error().Err(err).Msg("API key validation failed")
		return false
	}
	return true
}

// AvailableModels implements model.Provider.AvailableModels. Failures are
// logged and mapped to an empty list.
func (p *OpenRouterProvider) AvailableModels(ctx context.Context, apiKey string) []string {
	client := p.client(apiKey)
	page, err := client.Models.List(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to list models")
		return nil
	}
	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids
}

// GenerateImage implements model.Provider.GenerateImage. OpenRouter has no
// dedicated images endpoint; image-capable models return data URLs through
// the chat-completions response when the image modality is requested.
func (p *OpenRouterProvider) GenerateImage(ctx context.Context, params model.ImageParams, apiKey string) (*model.ImageResponse, error) {
	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(params.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(params.Prompt),
		},
	}

	client := p.client(apiKey)
	completion, err := client.Chat.Completions.New(ctx, req,
		option.WithJSONSet("modalities", []string{"image", "text"}))
	if err != nil {
		return nil, fmt.Errorf("OpenRouter image generation failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("provider returned no choices")
	}

	images, err := decodeOpenRouterImages(completion.Choices[0].Message)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no images returned")
	}
	return &model.ImageResponse{Images: images, Raw: completion}, nil
}

// decodeOpenRouterImages reads the message's "images" extension field,
// which the SDK does not model, and decodes each data URL entry.
func decodeOpenRouterImages(msg openai.ChatCompletionMessage) ([]model.GeneratedImage, error) {
	field, ok := msg.JSON.ExtraFields["images"]
	if !ok {
		return nil, nil
	}

	var entries []struct {
		Type     string `json:"type"`
		ImageURL struct {
			URL string `json:"url"`
		} `json:"image_url"`
	}
	if err := json.Unmarshal([]byte(field.Raw()), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}

	var images []model.GeneratedImage
	for _, entry := range entries {
		img, err := decodeDataURL(entry.ImageURL.URL)
		if err != nil {
			continue
		}
		images = append(images, img)
	}
	return images, nil
}

// OpenRouterPlugin returns the plugin descriptor wiring an OpenRouter
// facade into the host registry.
func OpenRouterPlugin(log zerolog.Logger) *model.Plugin {
	return &model.Plugin{
		Metadata: model.PluginMetadata{
			ID:          "openrouter",
			Name:        "OpenRouter",
			Description: "Unified access to hundreds of models through OpenRouter's OpenAI-compatible API",
			Color:       "#6467f2",
		},
		Config: model.PluginConfig{
			RequiresAPIKey: true,
			DefaultBaseURL: openRouterDefaultBaseURL,
		},
		Capabilities: model.Capabilities{
			Chat:            true,
			ImageGeneration: true,
			WebSearch:       true,
		},
		Attachments: model.AttachmentSupport{
			MimeTypes: openRouterMimeTypes,
			Notes:     "Images are sent inline as base64 data URLs; non-vision models ignore image parts.",
		},
		CreateProvider: func(baseURL string) model.Provider {
			return NewOpenRouterProvider(baseURL, log)
		},
		ModelInfo:      openRouterModelInfo,
		FormatTools:    FormatTools,
		ParseToolCalls: ParseToolCalls,
	}
}

func openRouterModelInfo(modelID string) model.ModelInfo {
	return model.ModelInfo{
		ID:          modelID,
		DisplayName: stripProviderPrefix(modelID),
	}
}

// stripProviderPrefix removes vendor prefixes from OpenRouter model names.
// "meta-llama/llama-3.2-90b-instruct" → "llama-3.2-90b-instruct"
func stripProviderPrefix(modelName string) string {
	if idx := strings.Index(modelName, "/"); idx != -1 {
		return modelName[idx+1:]
	}
	return modelName
}
