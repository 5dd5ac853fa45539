package model

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// PluginMetadata describes a provider plugin to the host.
type PluginMetadata struct {
	ID          string
	Name        string
	Description string
	Color       string
}

// PluginConfig declares what configuration a plugin needs from the host.
type PluginConfig struct {
	RequiresAPIKey  bool
	RequiresBaseURL bool
	DefaultBaseURL  string
}

// Capabilities declares which operations a plugin supports.
type Capabilities struct {
	Chat            bool
	ImageGeneration bool
	Embeddings      bool
	WebSearch       bool
}

// AttachmentSupport declares which attachment MIME types a plugin accepts.
type AttachmentSupport struct {
	MimeTypes []string
	Notes     string
}

// ModelInfo is static metadata about one model a plugin knows about.
type ModelInfo struct {
	ID            string
	DisplayName   string
	ContextWindow int64
	MaxOutput     int64
}

// Plugin is the descriptor a provider plugin registers with the host:
// static metadata and capabilities plus the factory and helper functions
// wiring a Provider into the host application.
type Plugin struct {
	Metadata     PluginMetadata
	Config       PluginConfig
	Capabilities Capabilities
	Attachments  AttachmentSupport

	// CreateProvider builds a Provider facade for the given base URL.
	// An empty baseURL selects the plugin's default.
	CreateProvider func(baseURL string) Provider

	// ModelInfo returns static metadata for a model id.
	ModelInfo func(modelID string) ModelInfo

	// FormatTools converts MCP tools into the normalized vendor-neutral
	// definition the host serializes.
	FormatTools func(tools []mcptypes.Tool) []ToolDefinition

	// ParseToolCalls recovers tool calls a model leaked into plain text
	// content instead of the structured tool-call channel.
	ParseToolCalls func(content string) []ToolCall
}
