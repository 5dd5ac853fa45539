package provider

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"github.com/foundry-9/quilltap-providers/model"
)

// mapCompletion converts a non-streaming vendor response to the internal
// shape. A response without choices is a fatal condition for the call, not
// something to degrade around.
func mapCompletion(completion *openai.ChatCompletion, attachments model.AttachmentResult) (*model.Response, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return nil, fmt.Errorf("provider returned no choices")
	}

	choice := completion.Choices[0]
	finish := choice.FinishReason
	if finish == "" {
		finish = "stop"
	}

	return &model.Response{
		Content:      choice.Message.Content,
		FinishReason: finish,
		ToolCalls:    mapToolCalls(choice.Message.ToolCalls),
		Usage: model.Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
		Attachments: attachments,
		Raw:         completion,
	}, nil
}

func mapToolCalls(calls []openai.ChatCompletionMessageToolCallUnion) []model.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	out := make([]model.ToolCall, len(calls))
	for i, call := range calls {
		out[i] = model.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: ParseToolArguments(call.Function.Arguments),
		}
	}
	return out
}

// decodeDataURL decodes a "data:<mime>;base64,<payload>" URL into image
// bytes plus MIME type.
func decodeDataURL(url string) (model.GeneratedImage, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return model.GeneratedImage{}, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return model.GeneratedImage{}, fmt.Errorf("malformed data URL")
	}
	mimeType, _, _ := strings.Cut(meta, ";")
	if !strings.Contains(meta, "base64") {
		return model.GeneratedImage{}, fmt.Errorf("data URL is not base64-encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return model.GeneratedImage{}, fmt.Errorf("failed to decode image data: %w", err)
	}
	return model.GeneratedImage{Data: data, MimeType: mimeType}, nil
}
