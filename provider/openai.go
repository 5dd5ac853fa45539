package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"

	"github.com/foundry-9/quilltap-providers/model"
)

const openAIDefaultBaseURL = "https://api.openai.com/v1"

var openAIMimeTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// OpenAIProvider implements model.Provider against OpenAI's native API.
type OpenAIProvider struct {
	baseURL string
	log     zerolog.Logger
}

// NewOpenAIProvider creates an OpenAI provider facade. An empty baseURL
// selects the public OpenAI endpoint.
func NewOpenAIProvider(baseURL string, log zerolog.Logger) *OpenAIProvider {
	if baseURL == "" {
		baseURL = openAIDefaultBaseURL
	}
	return &OpenAIProvider{baseURL: baseURL, log: log}
}

func (p *OpenAIProvider) client(apiKey string) openai.Client {
	return openai.NewClient(
		option.WithBaseURL(p.baseURL),
		option.WithAPIKey(apiKey),
	)
}

// SendMessage implements model.Provider.SendMessage.
func (p *OpenAIProvider) SendMessage(ctx context.Context, params model.Params, apiKey string) (*model.Response, error) {
	messages, attachments := FormatMessages(params.Messages, openAIMimeTypes)
	// Temperature is omitted when the caller did not set one: several
	// OpenAI models reject custom temperatures outright.
	req, opts := buildChatParams(params, messages, false, false)

	client := p.client(apiKey)
	completion, err := client.Chat.Completions.New(ctx, req, opts...)
	if err != nil {
		return nil, fmt.Errorf("OpenAI chat completion failed: %w", err)
	}
	return mapCompletion(completion, attachments)
}

// StreamMessage implements model.Provider.StreamMessage.
func (p *OpenAIProvider) StreamMessage(ctx context.Context, params model.Params, apiKey string) (*model.ChunkStream, error) {
	messages, attachments := FormatMessages(params.Messages, openAIMimeTypes)
	req, opts := buildChatParams(params, messages, true, false)

	client := p.client(apiKey)
	stream := client.Chat.Completions.NewStreaming(ctx, req, opts...)
	if stream == nil {
		return nil, fmt.Errorf("expected streaming response from provider")
	}
	return newChunkStream(stream, attachments, "OpenAI streaming error"), nil
}

// ValidateAPIKey implements model.Provider.ValidateAPIKey.
func (p *OpenAIProvider) ValidateAPIKey(ctx context.Context, apiKey string) bool {
	client := p.client(apiKey)
	if _, err := client.Models.List(ctx); err != nil {
		p.log.Error().Err(err).Msg("API key validation failed")
		return false
	}
	return true
}

// AvailableModels implements model.Provider.AvailableModels.
func (p *OpenAIProvider) AvailableModels(ctx context.Context, apiKey string) []string {
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

// GenerateImage implements model.Provider.GenerateImage using OpenAI's
// native images endpoint.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, params model.ImageParams, apiKey string) (*model.ImageResponse, error) {
	imageModel := openai.ImageModel(params.Model)
	if params.Model == "" {
		imageModel = openai.ImageModelDallE3
	}

	req := openai.ImageGenerateParams{
		Prompt:         params.Prompt,
		Model:          imageModel,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	}
	if params.Count > 0 {
		req.N = openai.Int(params.Count)
	}
	if params.Size != "" {
		req.Size = openai.ImageGenerateParamsSize(params.Size)
	}

	client := p.client(apiKey)
	resp, err := client.Images.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI image generation failed: %w", err)
	}

	var images []model.GeneratedImage
	for _, img := range resp.Data {
		switch {
		case img.B64JSON != "":
			data, err := base64.StdEncoding.DecodeString(img.B64JSON)
			if err != nil {
				p.log.Warn().Err(err).Msg("skipping undecodable image payload")
				continue
			}
			images = append(images, model.GeneratedImage{Data: data, MimeType: "image/png"})
		case strings.HasPrefix(img.URL, "data:"):
			decoded, err := decodeDataURL(img.URL)
			if err != nil {
				p.log.Warn().Err(err).Msg("skipping undecodable image payload")
				continue
			}
			images = append(images, decoded)
		}
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no images returned")
	}
	return &model.ImageResponse{Images: images, Raw: resp}, nil
}

// OpenAIPlugin returns the plugin descriptor wiring an OpenAI facade into
// the host registry.
func OpenAIPlugin(log zerolog.Logger) *model.Plugin {
	return &model.Plugin{
		Metadata: model.PluginMetadata{
			ID:          "openai",
			Name:        "OpenAI",
			Description: "GPT chat models and DALL-E image generation via OpenAI's native API",
			Color:       "#10a37f",
		},
		Config: model.PluginConfig{
			RequiresAPIKey: true,
			DefaultBaseURL: openAIDefaultBaseURL,
		},
		Capabilities: model.Capabilities{
			Chat:            true,
			ImageGeneration: true,
			WebSearch:       true,
		},
		Attachments: model.AttachmentSupport{
			MimeTypes: openAIMimeTypes,
			Notes:     "Images are sent inline as base64 data URLs to vision-capable models.",
		},
		CreateProvider: func(baseURL string) model.Provider {
			return NewOpenAIProvider(baseURL, log)
		},
		ModelInfo: func(modelID string) model.ModelInfo {
			return model.ModelInfo{ID: modelID, DisplayName: modelID}
		},
		FormatTools:    FormatTools,
		ParseToolCalls: ParseToolCalls,
	}
}
