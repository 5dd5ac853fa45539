package model

import (
	"context"
	"errors"
	"io"
)

// Provider abstracts one vendor's chat/image operations behind
// provider-agnostic types.
//
// This interface is defined in the model package (not provider package) to
// avoid import cycles: provider implementations import model, and hosts can
// use the interface without importing any vendor plugin.
//
// Error semantics follow the host contract: SendMessage, StreamMessage and
// GenerateImage propagate vendor failures so the host can surface them;
// ValidateAPIKey and AvailableModels never do — failures are logged and
// mapped to false / empty.
type Provider interface {
	// SendMessage performs a non-streaming chat call.
	SendMessage(ctx context.Context, params Params, apiKey string) (*Response, error)

	// StreamMessage performs a streaming chat call. The returned stream is
	// pull-based: no vendor chunk is requested until the previous one has
	// been consumed via Next.
	StreamMessage(ctx context.Context, params Params, apiKey string) (*ChunkStream, error)

	// ValidateAPIKey checks a key with a lightweight vendor call.
	ValidateAPIKey(ctx context.Context, apiKey string) bool

	// AvailableModels lists model ids offered by the vendor.
	AvailableModels(ctx context.Context, apiKey string) []string

	// GenerateImage produces one or more images from a prompt.
	GenerateImage(ctx context.Context, params ImageParams, apiKey string) (*ImageResponse, error)
}

// ChunkStream is a pull-based iterator over StreamChunk values, mirroring
// the shape of the vendor SDK's SSE stream:
//
//	for stream.Next() {
//	    chunk := stream.Current()
//	    ...
//	}
//	if err := stream.Err(); err != nil { ... }
//
// The caller controls backpressure by how quickly it calls Next.
type ChunkStream struct {
	pull    func() (StreamChunk, error)
	closeFn func() error
	cur     StreamChunk
	err     error
	done    bool
}

// NewChunkStream builds a stream from a pull function. pull returns io.EOF
// when the stream is exhausted; any other error terminates iteration and is
// reported by Err. closeFn may be nil.
func NewChunkStream(pull func() (StreamChunk, error), closeFn func() error) *ChunkStream {
	return &ChunkStream{pull: pull, closeFn: closeFn}
}

// Next advances to the next chunk. It returns false when the stream is
// exhausted or failed; check Err to distinguish.
func (s *ChunkStream) Next() bool {
	if s.done || s.err != nil {
		return false
	}
	chunk, err := s.pull()
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return false
	}
	s.cur = chunk
	return true
}

// Current returns the chunk produced by the last successful Next.
func (s *ChunkStream) Current() StreamChunk {
	return s.cur
}

// Err returns the first error encountered during iteration, if any.
func (s *ChunkStream) Err() error {
	return s.err
}

// Close releases the underlying vendor stream. Safe to call after a partial
// read; callers abandoning iteration before Done should call it.
func (s *ChunkStream) Close() error {
	s.done = true
	if s.closeFn != nil {
		return s.closeFn()
	}
	return nil
}
