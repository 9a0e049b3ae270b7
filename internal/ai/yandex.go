package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/vdracula/draft-bot/internal/apperrors"
)

const completionService = "completion"

type completionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type completionMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type completionRequest struct {
	ModelURI          string              `json:"modelUri"`
	CompletionOptions completionOptions   `json:"completionOptions"`
	Messages          []completionMessage `json:"messages"`
}

// YandexClient talks to the foundation models completion endpoint.
type YandexClient struct {
	endpoint   string
	apiKey     string
	folderID   string
	modelURI   string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewYandexClient(s Settings, logger zerolog.Logger) (*YandexClient, error) {
	if s.APIKey == "" {
		return nil, errors.New("completion api key missing")
	}
	if s.FolderID == "" {
		return nil, errors.New("completion folder id missing")
	}
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = DefaultYandexEndpoint
	}
	model := s.Model
	if model == "" {
		model = DefaultYandexModel
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	if s.HTTPClient != nil {
		httpClient = &http.Client{
			Transport:     s.HTTPClient.Transport,
			CheckRedirect: s.HTTPClient.CheckRedirect,
			Jar:           s.HTTPClient.Jar,
			Timeout:       timeout,
		}
	}
	return &YandexClient{
		endpoint:   endpoint,
		apiKey:     s.APIKey,
		folderID:   s.FolderID,
		modelURI:   fmt.Sprintf("gpt://%s/%s", s.FolderID, model),
		httpClient: httpClient,
		logger:     logger.With().Str("component", "completion").Str("provider", "yandex").Logger(),
	}, nil
}

func (c *YandexClient) Generate(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req)
	payload := completionRequest{
		ModelURI: c.modelURI,
		CompletionOptions: completionOptions{
			Stream:      false,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		},
		Messages: []completionMessage{
			{Role: "system", Text: prompt.System},
			{Role: "user", Text: prompt.User},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Api-Key "+c.apiKey)
	httpReq.Header.Set("x-folder-id", c.folderID)
	httpReq.Header.Set("x-client-request-id", requestID)

	log := c.logger.With().Str("request_id", requestID).Str("style", string(req.Style)).Str("action", string(req.Action)).Logger()
	started := time.Now()
	log.Debug().Msg("Sending completion request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &apperrors.TransportError{Op: completionService, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apperrors.TransportError{Op: completionService, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Dur("elapsed", time.Since(started)).Msg("Completion request failed")
		return "", &apperrors.UpstreamError{Service: completionService, StatusCode: resp.StatusCode, Body: apperrors.Truncate(string(raw), apperrors.MaxBodyRunes)}
	}

	text := gjson.GetBytes(raw, "result.alternatives.0.message.text")
	if !text.Exists() {
		return "", &apperrors.UpstreamError{
			Service:    completionService,
			StatusCode: resp.StatusCode,
			Body:       "response has no result.alternatives[0].message.text: " + apperrors.Truncate(string(raw), apperrors.MaxBodyRunes),
		}
	}
	log.Debug().Dur("elapsed", time.Since(started)).Int("chars", len(text.String())).Msg("Completion received")
	return text.String(), nil
}
