package provider

import (
	"fmt"
	"io"

	"github.com/openai/openai-go/v3"

	"github.com/foundry-9/quilltap-providers/model"
)

// chunkSource is the pull side of a vendor SSE stream. The SDK's
// ssestream.Stream[openai.ChatCompletionChunk] satisfies it; tests supply
// scripted sources.
type chunkSource interface {
	Next() bool
	Current() openai.ChatCompletionChunk
	Err() error
	Close() error
}

// AccumulatedMessage mirrors the vendor's final-response shape, built
// incrementally while streaming. The terminal chunk carries it as the Raw
// payload.
type AccumulatedMessage struct {
	Content      string
	FinishReason string
	ToolCalls    []AccumulatedToolCall
	Usage        model.Usage
}

// AccumulatedToolCall collects tool-call deltas for one slot. Deltas are
// correlated by the vendor-supplied index, not by id: ids and names can
// arrive split across chunks.
type AccumulatedToolCall struct {
	Index     int64
	ID        string
	Name      string
	Arguments string
}

// accumulator merges incremental chunks from one vendor stream into a
// consolidated message and re-emits normalized chunks. One accumulator
// serves exactly one streaming call and is discarded afterwards; it holds
// no state shared across calls.
type accumulator struct {
	src         chunkSource
	attachments model.AttachmentResult
	errPrefix   string

	full     AccumulatedMessage
	terminal bool // terminal chunk emitted; remaining vendor chunks are drained silently
	finished bool
}

// newChunkStream wraps a vendor stream in a pull-based ChunkStream. No
// vendor chunk is requested until the caller asks for the next emission,
// so the caller's pace is the stream's pace.
func newChunkStream(src chunkSource, attachments model.AttachmentResult, errPrefix string) *model.ChunkStream {
	acc := &accumulator{src: src, attachments: attachments, errPrefix: errPrefix}
	return model.NewChunkStream(acc.next, src.Close)
}

// next pulls vendor chunks until one of them produces an emission.
func (a *accumulator) next() (model.StreamChunk, error) {
	if a.finished {
		return model.StreamChunk{}, io.EOF
	}

	for a.src.Next() {
		content, finish, usage := a.merge(a.src.Current())

		if a.terminal {
			// Keep reading so the vendor stream is not left half-read,
			// but nothing may be emitted past the terminal chunk.
			continue
		}

		switch {
		case usage != nil && a.full.FinishReason != "":
			// Usage has arrived and a finish reason is known: the stream
			// is complete.
			return a.emitTerminal()
		case finish == "tool_calls" && usage == nil:
			// Some vendors deliver usage in a trailing chunk after a
			// tool-call finish. No further content is expected, so the
			// terminal chunk goes out now.
			return a.emitTerminal()
		case content != "":
			return model.StreamChunk{Content: content}, nil
		}
	}

	if err := a.src.Err(); err != nil {
		// Chunks already yielded stand; no terminal chunk follows a
		// failed stream.
		a.finished = true
		return model.StreamChunk{}, fmt.Errorf("%s: %w", a.errPrefix, err)
	}
	if !a.terminal {
		// Stream ended cleanly without a terminal signal. Emit one from
		// accumulated state so every stream has exactly one Done chunk.
		return a.emitTerminal()
	}

	a.finished = true
	return model.StreamChunk{}, io.EOF
}

// merge folds one vendor chunk into the accumulated message and reports
// the three normalized signals: content delta, finish reason, and usage
// (nil when the chunk carried none).
func (a *accumulator) merge(chunk openai.ChatCompletionChunk) (content, finish string, usage *model.Usage) {
	if len(chunk.Choices) > 0 {
		choice := chunk.Choices[0]
		content = choice.Delta.Content
		a.full.Content += content
		if choice.FinishReason != "" {
			finish = choice.FinishReason
			a.full.FinishReason = finish
		}
		for _, tc := range choice.Delta.ToolCalls {
			a.mergeToolCall(tc)
		}
	}
	if u := chunk.Usage; u.PromptTokens != 0 || u.CompletionTokens != 0 || u.TotalTokens != 0 {
		usage = &model.Usage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
			TotalTokens:      u.TotalTokens,
		}
		a.full.Usage = *usage
	}
	return content, finish, usage
}

func (a *accumulator) mergeToolCall(delta openai.ChatCompletionChunkChoiceDeltaToolCall) {
	for i := range a.full.ToolCalls {
		if a.full.ToolCalls[i].Index == delta.Index {
			a.full.ToolCalls[i].ID += delta.ID
			a.full.ToolCalls[i].Name += delta.Function.Name
			a.full.ToolCalls[i].Arguments += delta.Function.Arguments
			return
		}
	}
	a.full.ToolCalls = append(a.full.ToolCalls, AccumulatedToolCall{
		Index:     delta.Index,
		ID:        delta.ID,
		Name:      delta.Function.Name,
		Arguments: delta.Function.Arguments,
	})
}

func (a *accumulator) emitTerminal() (model.StreamChunk, error) {
	a.terminal = true
	usage := a.full.Usage
	attachments := a.attachments
	return model.StreamChunk{
		Done:        true,
		Usage:       &usage,
		ToolCalls:   a.finishedToolCalls(),
		Attachments: &attachments,
		Raw:         a.full,
	}, nil
}

func (a *accumulator) finishedToolCalls() []model.ToolCall {
	if len(a.full.ToolCalls) == 0 {
		return nil
	}
	out := make([]model.ToolCall, len(a.full.ToolCalls))
	for i, tc := range a.full.ToolCalls {
		out[i] = model.ToolCall{
			ID:        tc.ID,
			Name:      tc.Name,
			Arguments: ParseToolArguments(tc.Arguments),
		}
	}
	return out
}
