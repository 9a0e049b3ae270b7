package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/vdracula/draft-bot/internal/apperrors"
)

func newTestYandexClient(t *testing.T, handler http.HandlerFunc) (*YandexClient, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewYandexClient(Settings{
		APIKey:   "test-key",
		FolderID: "b1gfolder",
		Endpoint: server.URL,
		Timeout:  2 * time.Second,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewYandexClient() error = %v", err)
	}
	return client, &calls
}

func TestYandexGenerateSuccess(t *testing.T) {
	var got completionRequest
	client, calls := newTestYandexClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Api-Key test-key" {
			t.Errorf("Unexpected Authorization header %q", auth)
		}
		if folder := r.Header.Get("x-folder-id"); folder != "b1gfolder" {
			t.Errorf("Unexpected x-folder-id header %q", folder)
		}
		if r.Header.Get("x-client-request-id") == "" {
			t.Error("Expected a client request id")
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("Request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"result":{"alternatives":[{"message":{"role":"assistant","text":"Result A"},"status":"ALTERNATIVE_STATUS_FINAL"},{"message":{"text":"ignored"}}]}}`)
	})

	text, err := client.Generate(context.Background(), Request{Content: "test", Style: StyleAuto, Action: ActionLonger})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "Result A" {
		t.Errorf("Expected first alternative, got %q", text)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Errorf("Expected exactly one request, got %d", n)
	}

	if got.ModelURI != "gpt://b1gfolder/yandexgpt/latest" {
		t.Errorf("Unexpected modelUri %q", got.ModelURI)
	}
	if got.CompletionOptions.Stream || got.CompletionOptions.Temperature != 0.7 || got.CompletionOptions.MaxTokens != 2000 {
		t.Errorf("Unexpected completion options %+v", got.CompletionOptions)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Text != SystemPrompt(StyleAuto) {
		t.Errorf("Unexpected system message %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "user" || got.Messages[1].Text != UserPrompt("test", ActionLonger) {
		t.Errorf("Unexpected user message %+v", got.Messages[1])
	}
}

func TestYandexGenerateUpstreamError(t *testing.T) {
	client, calls := newTestYandexClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"internal"}`)
	})

	_, err := client.Generate(context.Background(), Request{Content: "x", Style: StyleDefault})
	var upstream *apperrors.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", upstream.StatusCode)
	}
	if upstream.Body != `{"error":"internal"}` {
		t.Errorf("Expected body to be preserved, got %q", upstream.Body)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Errorf("Expected no retries, got %d requests", n)
	}
}

func TestYandexGenerateLargeErrorBody(t *testing.T) {
	page := strings.Repeat("<html>bad gateway</html>\n", 300)
	client, _ := newTestYandexClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, page)
	})

	_, err := client.Generate(context.Background(), Request{Content: "x"})
	var upstream *apperrors.UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusBadGateway {
		t.Fatalf("Expected UpstreamError 502, got %v", err)
	}
	if n := utf8.RuneCountInString(upstream.Body); n > apperrors.MaxBodyRunes+3 {
		t.Errorf("Expected body capped near %d runes, got %d", apperrors.MaxBodyRunes, n)
	}
	if !strings.HasPrefix(upstream.Body, "<html>bad gateway</html>") {
		t.Errorf("Expected the start of the body, got %q", upstream.Body)
	}
}

func TestYandexGenerateMalformedResponse(t *testing.T) {
	client, _ := newTestYandexClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"result":{"alternatives":[]}}`)
	})

	_, err := client.Generate(context.Background(), Request{Content: "x"})
	if !apperrors.IsUpstream(err) {
		t.Fatalf("Expected UpstreamError for empty alternatives, got %v", err)
	}
}

func TestYandexGenerateTransportError(t *testing.T) {
	client, _ := newTestYandexClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.Generate(context.Background(), Request{Content: "x"})
	if !apperrors.IsTransport(err) {
		t.Fatalf("Expected TransportError on timeout, got %v", err)
	}
}

func TestNewYandexClientValidation(t *testing.T) {
	if _, err := NewYandexClient(Settings{FolderID: "f"}, zerolog.Nop()); err == nil {
		t.Error("Expected error without api key")
	}
	if _, err := NewYandexClient(Settings{APIKey: "k"}, zerolog.Nop()); err == nil {
		t.Error("Expected error without folder id")
	}
}
