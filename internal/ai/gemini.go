package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/vdracula/draft-bot/internal/apperrors"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
	settings  Settings
	logger    zerolog.Logger
}

func NewGeminiClient(ctx context.Context, s Settings, logger zerolog.Logger) (*GeminiClient, error) {
	if s.APIKey == "" {
		return nil, errors.New("gemini api key missing")
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	opts := []option.ClientOption{option.WithAPIKey(s.APIKey)}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	modelName := s.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiClient{
		client:    client,
		modelName: modelName,
		settings:  s,
		logger:    logger.With().Str("component", "completion").Str("provider", "gemini").Logger(),
	}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.settings.Timeout)
	defer cancel()

	prompt := BuildPrompt(req)
	// SystemInstruction belongs to the model handle, so each call builds its own.
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(maxTokens)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(prompt.System)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		g.logger.Warn().Err(err).Msg("Completion request failed")
		return "", classifyGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &apperrors.UpstreamError{Service: completionService, StatusCode: 200, Body: "received an empty response from gemini"}
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", &apperrors.UpstreamError{Service: completionService, StatusCode: 200, Body: fmt.Sprintf("unexpected part type %T", resp.Candidates[0].Content.Parts[0])}
	}
	return string(text), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Message
		if body == "" {
			body = apiErr.Body
		}
		return &apperrors.UpstreamError{Service: completionService, StatusCode: apiErr.Code, Body: apperrors.Truncate(body, apperrors.MaxBodyRunes)}
	}
	return &apperrors.TransportError{Op: completionService, Err: err}
}
