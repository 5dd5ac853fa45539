package testutil

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"github.com/foundry-9/quilltap-providers/model"
)

// TestMessages returns a sample conversation for testing
func TestMessages() []model.Message {
	return []model.Message{
		{Role: model.RoleSystem, Content: "You are a helpful assistant."},
		{Role: model.RoleUser, Content: "Hello, how are you?"},
		{Role: model.RoleAssistant, Content: "I'm doing well, thank you!"},
	}
}

// SingleUserMessage returns a single user message for simple tests
func SingleUserMessage(content string) []model.Message {
	return []model.Message{
		{Role: model.RoleUser, Content: content},
	}
}

// PNGAttachment returns a loaded image attachment with a fixed id
func PNGAttachment(id string) model.Attachment {
	return model.Attachment{
		ID:       id,
		MimeType: "image/png",
		// 1x1 transparent PNG
		Data: "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==",
	}
}

// UnloadedAttachment returns an attachment whose data was never loaded
func UnloadedAttachment(id string) model.Attachment {
	return model.Attachment{ID: id, MimeType: "image/png"}
}

// PDFAttachment returns an attachment with an unsupported MIME type
func PDFAttachment(id string) model.Attachment {
	return model.Attachment{ID: id, MimeType: "application/pdf", Data: "JVBERi0xLjQ="}
}

// MessageWithAttachments returns a user message carrying the given attachments
func MessageWithAttachments(content string, attachments ...model.Attachment) model.Message {
	return model.Message{
		Role:        model.RoleUser,
		Content:     content,
		Attachments: attachments,
	}
}

// TestMCPTools returns sample MCP tools for testing
func TestMCPTools() []mcptypes.Tool {
	return []mcptypes.Tool{
		{
			Name:        "get_weather",
			Description: "Get the current weather for a location",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"location": map[string]any{
						"type":        "string",
						"description": "The city and state, e.g. San Francisco, CA",
					},
				},
				Required: []string{"location"},
			},
		},
		{
			Name:        "calculate",
			Description: "Perform a mathematical calculation",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"expression": map[string]any{
						"type":        "string",
						"description": "The mathematical expression to evaluate",
					},
				},
				Required: []string{"expression"},
			},
		},
	}
}
