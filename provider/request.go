package provider

import (
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/foundry-9/quilltap-providers/model"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1000
	defaultTopP        = 1.0
)

// buildChatParams assembles the vendor request payload from internal
// parameters, applying defaults. No validation happens here; malformed
// payloads are rejected by the vendor SDK.
//
// alwaysTemperature selects the provider quirk: OpenRouter defaults an
// unset temperature to 0.7, while OpenAI omits the field entirely so that
// models rejecting custom temperatures keep working.
//
// Streaming requests additionally ask the vendor to include usage in the
// terminal chunk. The returned request options carry settings the typed
// params cannot express (the web-search feature flag).
func buildChatParams(p model.Params, messages []openai.ChatCompletionMessageParamUnion, streaming, alwaysTemperature bool) (openai.ChatCompletionNewParams, []option.RequestOption) {
	params := openai.ChatCompletionNewParams{
		Messages:  messages,
		Model:     openai.ChatModel(p.Model),
		MaxTokens: openai.Int(defaultMaxTokens),
		TopP:      openai.Float(defaultTopP),
	}

	if p.Temperature != nil {
		params.Temperature = openai.Float(*p.Temperature)
	} else if alwaysTemperature {
		params.Temperature = openai.Float(defaultTemperature)
	}
	if p.MaxTokens != nil {
		params.MaxTokens = openai.Int(*p.MaxTokens)
	}
	if p.TopP != nil {
		params.TopP = openai.Float(*p.TopP)
	}
	if len(p.Stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: p.Stop}
	}
	if len(p.Tools) > 0 {
		params.Tools = convertToolsToOpenAI(p.Tools)
		params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("auto"),
		}
	}
	if streaming {
		params.StreamOptions = openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		}
	}

	var opts []option.RequestOption
	if p.WebSearch {
		opts = append(opts, option.WithJSONSet("web_search_options", map[string]any{}))
	}

	return params, opts
}
