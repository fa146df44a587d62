package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gitlab.com/llmeet.net/internal/adapter/logging"
	"gitlab.com/llmeet.net/internal/config"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(&config.GeminiConfig{ApiKey: "key", Model: "test-model", BaseURL: srv.URL}, srv.Client(), logging.NewNopLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(&config.GeminiConfig{}, nil, logging.NewNopLogger()); !errors.Is(err, errs.AssistantUnavailable) {
		t.Fatalf("expected AssistantUnavailable, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test-model:generateContent" || r.Header.Get("x-goog-api-key") != "key" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		var body generateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Contents) != 2 {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		if body.Contents[0].Role != "user" || body.Contents[1].Role != "model" {
			http.Error(w, "bad roles", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"thinking","thought":true},{"text":"Hello "},{"text":"there"}]}}]}`))
	})

	got, err := c.Generate(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleModel, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "Hello there" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestGenerateHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	})

	_, err := c.Generate(context.Background(), []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}})
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusTooManyRequests || !strings.Contains(httpErr.Body, "quota") {
		t.Fatalf("expected 429 HTTPError, got %v", err)
	}
}

func TestGenerateStream(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test-model:streamGenerateContent" || r.URL.Query().Get("alt") != "sse" {
			http.Error(w, "bad path", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"Hel\"}]}}]}\n\n"))
		_, _ = w.Write([]byte(": keep-alive\n\n"))
		_, _ = w.Write([]byte("data: not json\n\n"))
		_, _ = w.Write([]byte("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"lo\"}]}}]}\n\n"))
		_, _ = w.Write([]byte("data: {\"candidates\":[]}\n\n"))
	})

	var chunks []string
	err := c.GenerateStream(context.Background(), []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if strings.Join(chunks, "|") != "Hel|lo" {
		t.Fatalf("unexpected chunks %q", chunks)
	}
}

func TestGenerateStreamStopsOnEmitError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 3; i++ {
			_, _ = w.Write([]byte("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"x\"}]}}]}\n\n"))
		}
	})

	stop := errors.New("client went away")
	calls := 0
	err := c.GenerateStream(context.Background(), []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}}, func(string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("expected stream to stop after the first chunk, calls=%d err=%v", calls, err)
	}
}
