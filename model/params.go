package model

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Params holds everything needed for a single chat call. Constructed fresh
// per call by the host; read-only to the provider.
type Params struct {
	Model    string
	Messages []Message

	// Optional sampling settings. Nil means "not specified by the caller";
	// each provider decides whether to default or omit (OpenAI omits
	// temperature when unset because some models reject custom values,
	// OpenRouter defaults it to 0.7).
	Temperature *float64
	MaxTokens   *int64
	TopP        *float64
	Stop        []string

	// Tools available to the model, in MCP form. Providers convert these
	// to their wire format and force tool choice to "auto" when non-empty.
	Tools []mcptypes.Tool

	// WebSearch enables the vendor's web-search feature flag.
	WebSearch bool
}

// ImageParams holds everything needed for a single image-generation call.
type ImageParams struct {
	Model  string
	Prompt string
	Size   string
	Count  int64
}

// ToolCall is a structured function-invocation request emitted by the model
// instead of (or alongside) free text.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// ToolDefinition is the normalized, vendor-neutral form of a tool produced
// by a plugin's FormatTools function. Parameters is a JSON Schema object.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}
