package autopost

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vdracula/draft-bot/internal/ai"
	"github.com/vdracula/draft-bot/internal/apperrors"
	"github.com/vdracula/draft-bot/internal/telegram"
)

// IdeaSource hands out the next topic to write about.
type IdeaSource interface {
	Next() (string, error)
}

type Autoposter struct {
	ideas     IdeaSource
	generator ai.Generator
	channel   telegram.Publisher
	logger    zerolog.Logger
}

func New(ideas IdeaSource, generator ai.Generator, channel telegram.Publisher, logger zerolog.Logger) *Autoposter {
	return &Autoposter{
		ideas:     ideas,
		generator: generator,
		channel:   channel,
		logger:    logger.With().Str("component", "autopost").Logger(),
	}
}

// Post draws the next idea, writes a post about it and publishes it to the
// channel. It returns the published text.
func (a *Autoposter) Post(ctx context.Context) (string, error) {
	if !a.channel.Configured() {
		return "", &apperrors.ConfigurationError{Setting: "CHANNEL_ID"}
	}

	idea, err := a.ideas.Next()
	if err != nil {
		return "", err
	}
	a.logger.Info().Str("idea", idea).Msg("Generating post")

	post, err := a.generator.Generate(ctx, ai.Request{Content: idea, Style: ai.StyleAuto})
	if err != nil {
		return "", fmt.Errorf("generating post for %q: %w", idea, err)
	}
	if err := a.channel.Publish(ctx, post); err != nil {
		return "", fmt.Errorf("publishing post for %q: %w", idea, err)
	}
	a.logger.Info().Str("idea", idea).Msg("Post published to channel")
	return post, nil
}

// Run is the scheduled entry point. Failures are logged and never returned,
// so a bad run cannot stop the job from firing again.
func (a *Autoposter) Run() {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().Interface("panic", r).Msg("Autopost run panicked")
		}
	}()

	if _, err := a.Post(context.Background()); err != nil {
		if apperrors.IsConfiguration(err) {
			a.logger.Warn().Err(err).Msg("Autopost skipped")
			return
		}
		a.logger.Error().Err(err).Msg("Autopost failed")
	}
}
