package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func newTestServer(t *testing.T, status int, body string, captured *completionRequest, hits *int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if captured != nil {
			raw, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(raw, captured); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGenerator(t *testing.T, baseURL string) *Generator {
	t.Helper()

	g, err := NewGenerator(Options{
		BaseURL:     baseURL + "/v1/",
		APIKey:      "secret",
		Model:       "test-model",
		Temperature: 0.1,
		MaxTokens:   500,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return g
}

func TestGeneratorGenerateContent(t *testing.T) {
	var captured completionRequest
	srv := newTestServer(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":" {\"react_native\": true} "}}]}`, &captured, nil)

	g := newTestGenerator(t, srv.URL)

	got, err := g.GenerateContent(context.Background(), "be precise", "resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"react_native": true}` {
		t.Fatalf("unexpected content: %q", got)
	}

	if captured.Model != "test-model" {
		t.Fatalf("unexpected model: %s", captured.Model)
	}
	if captured.Temperature != 0.1 || captured.MaxTokens != 500 {
		t.Fatalf("unexpected parameters: %+v", captured)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %+v", captured.Messages)
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != "be precise" {
		t.Fatalf("unexpected system message: %+v", captured.Messages[0])
	}
	if captured.Messages[1].Role != "user" || captured.Messages[1].Content != "resume text" {
		t.Fatalf("unexpected user message: %+v", captured.Messages[1])
	}
}

func TestGeneratorErrorStatusIsNotRetried(t *testing.T) {
	var hits int32
	srv := newTestServer(t, http.StatusInternalServerError, `{"error":{"message":"model not loaded"}}`, nil, &hits)

	g := newTestGenerator(t, srv.URL)

	_, err := g.GenerateContent(context.Background(), "sys", "msg")
	if err == nil {
		t.Fatal("expected error for failed status")
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Fatalf("expected endpoint detail in error, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected single request, got %d", hits)
	}
}

func TestGeneratorEmptyContent(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"choices":[]}`, nil, nil)

	g := newTestGenerator(t, srv.URL)

	if _, err := g.GenerateContent(context.Background(), "sys", "msg"); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestGeneratorUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := newTestGenerator(t, url)

	if _, err := g.GenerateContent(context.Background(), "sys", "msg"); err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}

func TestNewGeneratorDefaults(t *testing.T) {
	g, err := NewGenerator(Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Model() != defaultModel {
		t.Fatalf("expected default model, got %s", g.Model())
	}
	if g.client.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %s", g.client.BaseURL)
	}

	if _, err := NewGenerator(Options{BaseURL: "localhost:1234"}, nil); err == nil {
		t.Fatal("expected error for base url without scheme")
	}
}

func TestGeneratorSendsPromptVerbatim(t *testing.T) {
	var captured completionRequest
	srv := newTestServer(t, http.StatusOK,
		`{"choices":[{"message":{"content":"{}"}}]}`, &captured, nil)

	g := newTestGenerator(t, srv.URL)

	user := "  Resume text:\nEEG, DSP\t\n\n"
	if _, err := g.GenerateContent(context.Background(), "sys", user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(captured.Messages) != 2 || captured.Messages[1].Content != user {
		t.Fatalf("expected user message unchanged, got %+v", captured.Messages)
	}

	if _, err := g.GenerateContent(context.Background(), "sys", " \n\t"); err == nil {
		t.Fatal("expected error for blank prompt")
	}
}
