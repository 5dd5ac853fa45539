package provider

import (
	"encoding/json"
	"regexp"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go/v3"

	"github.com/foundry-9/quilltap-providers/model"
)

// convertToolsToOpenAI converts MCP tools to the OpenAI function-tool wire
// format. OpenAI and OpenRouter share this format. Both schemas are JSON
// Schema; the conversion just reshapes the envelope.
func convertToolsToOpenAI(tools []mcptypes.Tool) []openai.ChatCompletionToolUnionParam {
	if len(tools) == 0 {
		return nil
	}

	result := make([]openai.ChatCompletionToolUnionParam, len(tools))
	for i, tool := range tools {
		params := openai.FunctionParameters{
			"type":       tool.InputSchema.Type,
			"properties": tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			params["required"] = tool.InputSchema.Required
		}
		if tool.InputSchema.Defs != nil {
			params["$defs"] = tool.InputSchema.Defs
		}

		result[i] = openai.ChatCompletionFunctionTool(
			openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  params,
			},
		)
	}

	return result
}

// FormatTools normalizes MCP tools into the vendor-neutral definitions the
// host serializes. Used by both plugin descriptors.
func FormatTools(tools []mcptypes.Tool) []model.ToolDefinition {
	if len(tools) == 0 {
		return nil
	}

	result := make([]model.ToolDefinition, len(tools))
	for i, tool := range tools {
		params := map[string]any{
			"type":       tool.InputSchema.Type,
			"properties": tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			params["required"] = tool.InputSchema.Required
		}
		result[i] = model.ToolDefinition{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  params,
		}
	}
	return result
}

// ParseToolArguments parses a JSON arguments string into a map. A string
// that fails to parse yields an empty map rather than an error; argument
// fragments from aborted streams are common enough that callers should not
// have to handle them.
func ParseToolArguments(argsJSON string) map[string]any {
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return make(map[string]any)
	}
	return args
}

// leakedCall is the shape models use when they emit a tool call as plain
// text instead of through the structured tool-call channel.
type leakedCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

var toolCallTagPattern = regexp.MustCompile(`(?s)<tool_call>\s*(\{.*?\})\s*</tool_call>`)

// ParseToolCalls recovers tool calls a model leaked into plain content.
// Two leak shapes are recognized: bare JSON objects with "name" and
// "arguments" keys, and the same JSON wrapped in <tool_call> XML tags.
// Returns nil when the content contains no recognizable tool calls.
func ParseToolCalls(content string) []model.ToolCall {
	if calls := parseLeakedJSONToolCalls(content); len(calls) > 0 {
		return calls
	}
	return parseLeakedXMLToolCalls(content)
}

func parseLeakedJSONToolCalls(content string) []model.ToolCall {
	var calls []model.ToolCall
	for _, candidate := range extractJSONObjects(content) {
		if call, ok := parseLeakedCall(candidate); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

func parseLeakedXMLToolCalls(content string) []model.ToolCall {
	var calls []model.ToolCall
	for _, match := range toolCallTagPattern.FindAllStringSubmatch(content, -1) {
		if call, ok := parseLeakedCall(match[1]); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

func parseLeakedCall(raw string) (model.ToolCall, bool) {
	var leaked leakedCall
	if err := json.Unmarshal([]byte(raw), &leaked); err != nil || leaked.Name == "" {
		return model.ToolCall{}, false
	}
	args := leaked.Arguments
	if args == nil {
		args = make(map[string]any)
	}
	return model.ToolCall{Name: leaked.Name, Arguments: args}, true
}

// extractJSONObjects returns every balanced top-level {...} region in s.
// Brace depth is tracked outside JSON strings so embedded braces and
// escaped quotes do not break the scan.
func extractJSONObjects(s string) []string {
	var objects []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, c := range s {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			if depth == 0 {
				start = i
			}
			depth++
		case c == '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					objects = append(objects, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return objects
}
