package ai

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	openaioption "github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/vdracula/draft-bot/internal/apperrors"
)

// OpenAIClient serves any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client openai.Client
	model  string
	logger zerolog.Logger
}

func NewOpenAIClient(s Settings, logger zerolog.Logger) (*OpenAIClient, error) {
	if s.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	model := s.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(s.APIKey),
		openaioption.WithMaxRetries(0),
		openaioption.WithRequestTimeout(s.Timeout),
	}
	if s.Endpoint != "" {
		opts = append(opts, openaioption.WithBaseURL(s.Endpoint))
	}
	if s.HTTPClient != nil {
		opts = append(opts, openaioption.WithHTTPClient(s.HTTPClient))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
		logger: logger.With().Str("component", "completion").Str("provider", "openai").Logger(),
	}, nil
}

func (o *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req)
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		o.logger.Warn().Err(err).Msg("Completion request failed")
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			body := apiErr.Message
			if body == "" {
				body = apiErr.Error()
			}
			return "", &apperrors.UpstreamError{Service: completionService, StatusCode: apiErr.StatusCode, Body: apperrors.Truncate(body, apperrors.MaxBodyRunes)}
		}
		return "", &apperrors.TransportError{Op: completionService, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &apperrors.UpstreamError{Service: completionService, StatusCode: 200, Body: "openai: empty choices"}
	}
	return resp.Choices[0].Message.Content, nil
}
