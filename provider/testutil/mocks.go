package testutil

import (
	"context"
	"io"

	"github.com/foundry-9/quilltap-providers/model"
)

// MockProvider implements model.Provider for testing
type MockProvider struct {
	// Configurable responses
	SendMessageFunc    func(ctx context.Context, params model.Params, apiKey string) (*model.Response, error)
	StreamMessageFunc  func(ctx context.Context, params model.Params, apiKey string) (*model.ChunkStream, error)
	ValidateAPIKeyFunc func(ctx context.Context, apiKey string) bool
	ModelsFunc         func(ctx context.Context, apiKey string) []string
	GenerateImageFunc  func(ctx context.Context, params model.ImageParams, apiKey string) (*model.ImageResponse, error)
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider() *MockProvider {
	mock := &MockProvider{}
	mock.SendMessageFunc = mock.defaultSendMessage
	mock.StreamMessageFunc = mock.defaultStreamMessage
	mock.ValidateAPIKeyFunc = func(context.Context, string) bool { return true }
	mock.ModelsFunc = func(context.Context, string) []string {
		return []string{"mock-model-1", "mock-model-2"}
	}
	mock.GenerateImageFunc = mock.defaultGenerateImage
	return mock
}

func (m *MockProvider) defaultSendMessage(ctx context.Context, params model.Params, apiKey string) (*model.Response, error) {
	return &model.Response{
		Content:      "Mock response",
		FinishReason: "stop",
		Usage:        model.Usage{PromptTokens: 5, CompletionTokens: 2, TotalTokens: 7},
	}, nil
}

func (m *MockProvider) defaultStreamMessage(ctx context.Context, params model.Params, apiKey string) (*model.ChunkStream, error) {
	chunks := []model.StreamChunk{
		{Content: "Mock "},
		{Content: "response"},
		{Done: true, Usage: &model.Usage{PromptTokens: 5, CompletionTokens: 2, TotalTokens: 7}},
	}
	return ScriptedChunkStream(chunks), nil
}

func (m *MockProvider) defaultGenerateImage(ctx context.Context, params model.ImageParams, apiKey string) (*model.ImageResponse, error) {
	return &model.ImageResponse{
		Images: []model.GeneratedImage{{Data: []byte{0x89, 'P', 'N', 'G'}, MimeType: "image/png"}},
	}, nil
}

func (m *MockProvider) SendMessage(ctx context.Context, params model.Params, apiKey string) (*model.Response, error) {
	return m.SendMessageFunc(ctx, params, apiKey)
}

func (m *MockProvider) StreamMessage(ctx context.Context, params model.Params, apiKey string) (*model.ChunkStream, error) {
	return m.StreamMessageFunc(ctx, params, apiKey)
}

func (m *MockProvider) ValidateAPIKey(ctx context.Context, apiKey string) bool {
	return m.ValidateAPIKeyFunc(ctx, apiKey)
}

func (m *MockProvider) AvailableModels(ctx context.Context, apiKey string) []string {
	return m.ModelsFunc(ctx, apiKey)
}

func (m *MockProvider) GenerateImage(ctx context.Context, params model.ImageParams, apiKey string) (*model.ImageResponse, error) {
	return m.GenerateImageFunc(ctx, params, apiKey)
}

// ScriptedChunkStream builds a ChunkStream that replays the given chunks
func ScriptedChunkStream(chunks []model.StreamChunk) *model.ChunkStream {
	i := 0
	return model.NewChunkStream(func() (model.StreamChunk, error) {
		if i >= len(chunks) {
			return model.StreamChunk{}, io.EOF
		}
		chunk := chunks[i]
		i++
		return chunk, nil
	}, nil)
}
