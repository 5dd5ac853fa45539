package provider

import (
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"github.com/foundry-9/quilltap-providers/model"
)

// FormatMessages converts provider-agnostic messages to the OpenAI wire
// format, classifying attachments along the way. Pure function: the same
// input always yields the same output, and per-attachment failures land in
// the result instead of aborting the call.
//
// Every attachment id from the input appears in exactly one of
// result.Sent or result.Failed.
func FormatMessages(messages []model.Message, supportedMimeTypes []string) ([]openai.ChatCompletionMessageParamUnion, model.AttachmentResult) {
	var result model.AttachmentResult
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		if len(msg.Attachments) == 0 {
			out = append(out, plainMessage(msg))
			continue
		}

		parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(msg.Attachments)+1)
		if msg.Content != "" {
			parts = append(parts, openai.TextContentPart(msg.Content))
		}

		for _, att := range msg.Attachments {
			if !mimeSupported(att.MimeType, supportedMimeTypes) {
				result.Failed = append(result.Failed, model.AttachmentFailure{
					ID: att.ID,
					Error: fmt.Sprintf("Unsupported file type: %s. Supported: %s",
						att.MimeType, strings.Join(supportedMimeTypes, ", ")),
				})
				continue
			}
			if att.Data == "" {
				result.Failed = append(result.Failed, model.AttachmentFailure{
					ID:    att.ID,
					Error: "File data not loaded",
				})
				continue
			}
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: dataURL(att.MimeType, att.Data),
			}))
			result.Sent = append(result.Sent, att.ID)
		}

		out = append(out, openai.ChatCompletionMessageParamUnion{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: parts,
				},
			},
		})
	}

	return out, result
}

// plainMessage maps a message without attachments; content passes through
// as a plain string.
func plainMessage(msg model.Message) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case model.RoleSystem:
		return openai.SystemMessage(msg.Content)
	case model.RoleAssistant:
		return openai.AssistantMessage(msg.Content)
	default:
		return openai.UserMessage(msg.Content)
	}
}

func mimeSupported(mimeType string, supported []string) bool {
	for _, s := range supported {
		if strings.EqualFold(mimeType, s) {
			return true
		}
	}
	return false
}

// dataURL embeds base64 attachment data as an inline data URL.
func dataURL(mimeType, base64Data string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64Data)
}
