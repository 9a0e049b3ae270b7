// Package telegram is the chat gateway: the subset of the Bot API the bot uses
// and the channel publisher shared by autoposting and manual sends.
package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vdracula/draft-bot/internal/apperrors"
)

const service = "telegram"

// BotAPI is satisfied by *tgbotapi.BotAPI.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Publisher posts finished text to the destination channel.
type Publisher interface {
	Configured() bool
	Publish(ctx context.Context, text string) error
}

// Channel publishes to a chat given either as a numeric id (-100...) or as a
// public @username. An empty target leaves the channel unconfigured.
type Channel struct {
	api      BotAPI
	target   string
	chatID   int64
	username string
}

func NewChannel(api BotAPI, target string) *Channel {
	c := &Channel{api: api, target: strings.TrimSpace(target)}
	if c.target == "" {
		return c
	}
	if id, err := strconv.ParseInt(c.target, 10, 64); err == nil {
		c.chatID = id
		return c
	}
	c.username = c.target
	if !strings.HasPrefix(c.username, "@") {
		c.username = "@" + c.username
	}
	return c
}

func (c *Channel) Configured() bool {
	return c.target != ""
}

// String is the target as configured, or "" when unset.
func (c *Channel) String() string {
	return c.target
}

func (c *Channel) Publish(ctx context.Context, text string) error {
	if !c.Configured() {
		return &apperrors.ConfigurationError{Setting: "CHANNEL_ID"}
	}
	if err := ctx.Err(); err != nil {
		return &apperrors.TransportError{Op: service, Err: err}
	}

	var msg tgbotapi.MessageConfig
	if c.username != "" {
		msg = tgbotapi.NewMessageToChannel(c.username, text)
	} else {
		msg = tgbotapi.NewMessage(c.chatID, text)
	}
	if _, err := c.api.Send(msg); err != nil {
		return Classify(err)
	}
	return nil
}

// Classify maps a Bot API failure onto the shared error kinds: an error
// response from Telegram is an UpstreamError, anything else a TransportError.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return &apperrors.UpstreamError{Service: service, StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	return &apperrors.TransportError{Op: service, Err: err}
}
