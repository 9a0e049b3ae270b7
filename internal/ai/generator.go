package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultYandexEndpoint = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"
	DefaultYandexModel    = "yandexgpt/latest"
	DefaultGeminiModel    = "gemini-1.5-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultTimeout        = 90 * time.Second

	temperature = 0.7
	maxTokens   = 2000
)

// Request fully determines one completion call.
type Request struct {
	Content string
	Style   Style
	Action  Action
}

// Generator turns a request into generated post text. Implementations issue
// exactly one upstream call per Generate and never retry.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type Settings struct {
	Provider string
	APIKey   string
	FolderID string
	Model    string
	Endpoint string
	Timeout  time.Duration
	// HTTPClient overrides the transport; its Timeout is replaced by Timeout.
	HTTPClient *http.Client
}

func NewGenerator(ctx context.Context, s Settings, logger zerolog.Logger) (Generator, error) {
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	switch s.Provider {
	case "", "yandex":
		return NewYandexClient(s, logger)
	case "gemini":
		return NewGeminiClient(ctx, s, logger)
	case "openai":
		return NewOpenAIClient(s, logger)
	default:
		return nil, fmt.Errorf("completion provider %s not supported", s.Provider)
	}
}
