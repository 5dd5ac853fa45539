package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foundry-9/quilltap-providers/model"
	"github.com/foundry-9/quilltap-providers/provider/testutil"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestValidateAPIKeyFailureReturnsFalse(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "invalid api key", "type": "auth_error"}}`)
	})

	p := NewOpenRouterProvider(srv.URL, zerolog.Nop())
	if p.ValidateAPIKey(context.Background(), "bad-key") {
		t.Error("invalid key must map to false, not propagate")
	}
}

func TestValidateAPIKeyUnreachableReturnsFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	p := NewOpenRouterProvider(srv.URL, zerolog.Nop())
	if p.ValidateAPIKey(context.Background(), "any") {
		t.Error("network error must map to false, not propagate")
	}
}

func TestAvailableModels(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","data":[
			{"id":"meta-llama/llama-3.3-70b","object":"model"},
			{"id":"anthropic/claude-sonnet-4","object":"model"}
		]}`)
	})

	p := NewOpenRouterProvider(srv.URL, zerolog.Nop())
	models := p.AvailableModels(context.Background(), "key")

	if len(models) != 2 {
		t.Fatalf("model count: got %d, want 2", len(models))
	}
	if models[0] != "meta-llama/llama-3.3-70b" {
		t.Errorf("model id: got %q", models[0])
	}
}

func TestAvailableModelsFailureReturnsEmpty(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	p := NewOpenRouterProvider(srv.URL, zerolog.Nop())
	if models := p.AvailableModels(context.Background(), "key"); len(models) != 0 {
		t.Errorf("listing failure must map to empty, got %v", models)
	}
}

func TestSendMessage(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header: got %q", got)
		}
		// OpenRouter attribution headers ride along on every call.
		if r.Header.Get("HTTP-Referer") == "" || r.Header.Get("X-Title") == "" {
			t.Error("missing attribution headers")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id":"gen-1","object":"chat.completion","model":"meta-llama/llama-3.3-70b",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Hello!"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":9,"completion_tokens":2,"total_tokens":11}
		}`)
	})

	p := NewOpenRouterProvider(srv.URL, zerolog.Nop())
	resp, err := p.SendMessage(context.Background(), model.Params{
		Model:    "meta-llama/llama-3.3-70b",
		Messages: testutil.SingleUserMessage("hi"),
	}, "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Content != "Hello!" {
		t.Errorf("content: got %q", resp.Content)
	}
	if resp.FinishReason != "stop" {
		t.Errorf("finish reason: got %q", resp.FinishReason)
	}
	if resp.Usage.TotalTokens != 11 {
		t.Errorf("usage: got %+v", resp.Usage)
	}
}

func TestSendMessageNoChoices(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"gen-1","object":"chat.completion","choices":[]}`)
	})

	p := NewOpenRouterProvider(srv.URL, zerolog.Nop())
	_, err := p.SendMessage(context.Background(), model.Params{
		Model:    "m",
		Messages: testutil.SingleUserMessage("hi"),
	}, "key")
	if err == nil {
		t.Fatal("response without choices must fail, not degrade")
	}
}

func TestSendMessageVendorErrorPropagates(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"message": "model not found"}}`)
	})

	p := NewOpenRouterProvider(srv.URL, zerolog.Nop())
	_, err := p.SendMessage(context.Background(), model.Params{
		Model:    "missing",
		Messages: testutil.SingleUserMessage("hi"),
	}, "key")
	if err == nil {
		t.Fatal("vendor failure must propagate from SendMessage")
	}
	if !strings.Contains(err.Error(), "OpenRouter") {
		t.Errorf("error missing provider context: %v", err)
	}
}

func TestStreamMessageEndToEnd(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		events := []string{
			`{"id":"gen-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"Hi"}}]}`,
			`{"id":"gen-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":" there"},"finish_reason":"stop"}],"usage":{"prompt_tokens":5,"completion_tokens":2,"total_tokens":7}}`,
		}
		for _, e := range events {
			fmt.Fprintf(w, "data: %s\n\n", e)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	p := NewOpenRouterProvider(srv.URL, zerolog.Nop())
	stream, err := p.StreamMessage(context.Background(), model.Params{
		Model:    "m",
		Messages: testutil.SingleUserMessage("hi"),
	}, "key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer stream.Close()

	var chunks []model.StreamChunk
	for stream.Next() {
		chunks = append(chunks, stream.Current())
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("expected 2 emissions, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Content != "Hi" || chunks[0].Done {
		t.Errorf("first chunk: %+v", chunks[0])
	}
	if !chunks[1].Done || chunks[1].Usage == nil || chunks[1].Usage.TotalTokens != 7 {
		t.Errorf("terminal chunk: %+v", chunks[1])
	}
	if chunks[1].Attachments == nil {
		t.Error("terminal chunk missing attachment results")
	}
}

func TestOpenAIProviderTemperatureOmitted(t *testing.T) {
	// The OpenAI facade must not inject a default temperature into the
	// request body.
	var sawTemperature bool
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), `"temperature"`) {
			sawTemperature = true
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id":"c-1","object":"chat.completion",
			"choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}
		}`)
	})

	p := NewOpenAIProvider(srv.URL, zerolog.Nop())
	if _, err := p.SendMessage(context.Background(), model.Params{
		Model:    "gpt-4o-mini",
		Messages: testutil.SingleUserMessage("hi"),
	}, "key"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawTemperature {
		t.Error("unset temperature must be omitted from the request")
	}
}
