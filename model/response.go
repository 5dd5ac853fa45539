package model

// Usage reports token accounting for one completed call.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// Response is the consolidated result of a non-streaming chat call.
type Response struct {
	Content      string
	FinishReason string
	ToolCalls    []ToolCall
	Usage        Usage
	Attachments  AttachmentResult

	// Raw carries the vendor response for hosts that need fields the
	// normalized shape does not cover. Vendor field names never leak into
	// the typed fields above.
	Raw any
}

// StreamChunk is one normalized emission from a streaming call. Exactly one
// chunk per stream has Done set; all preceding chunks carry non-terminal
// content and nothing else.
type StreamChunk struct {
	Content     string
	Done        bool
	Usage       *Usage
	ToolCalls   []ToolCall
	Attachments *AttachmentResult
	Raw         any
}

// GeneratedImage is one decoded image from an image-generation call.
type GeneratedImage struct {
	Data     []byte
	MimeType string
}

// ImageResponse is the result of an image-generation call. Providers return
// an error rather than an ImageResponse with zero images.
type ImageResponse struct {
	Images []GeneratedImage
	Raw    any
}
