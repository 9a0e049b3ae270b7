package telegram

import (
	"context"
	"errors"
	"net/http"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vdracula/draft-bot/internal/apperrors"
)

type fakeAPI struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.sent = append(f.sent, c)
	return &tgbotapi.APIResponse{Ok: f.err == nil}, f.err
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeAPI) StopReceivingUpdates() {}

func TestPublishByChatID(t *testing.T) {
	api := &fakeAPI{}
	ch := NewChannel(api, "-1001234567890")
	if err := ch.Publish(context.Background(), "Result B"); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(api.sent) != 1 {
		t.Fatalf("Expected one message, got %d", len(api.sent))
	}
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("Expected MessageConfig, got %T", api.sent[0])
	}
	if msg.ChatID != -1001234567890 || msg.Text != "Result B" {
		t.Errorf("Unexpected message %+v", msg)
	}
}

func TestPublishByUsername(t *testing.T) {
	for _, target := range []string{"@neurocoder", "neurocoder"} {
		api := &fakeAPI{}
		if err := NewChannel(api, target).Publish(context.Background(), "hi"); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		msg := api.sent[0].(tgbotapi.MessageConfig)
		if msg.ChannelUsername != "@neurocoder" {
			t.Errorf("target %q: expected @neurocoder, got %q", target, msg.ChannelUsername)
		}
	}
}

func TestPublishUnconfigured(t *testing.T) {
	api := &fakeAPI{}
	ch := NewChannel(api, "  ")
	if ch.Configured() {
		t.Fatal("Blank target must leave the channel unconfigured")
	}
	err := ch.Publish(context.Background(), "x")
	var cfgErr *apperrors.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Setting != "CHANNEL_ID" {
		t.Errorf("Expected ConfigurationError for CHANNEL_ID, got %v", err)
	}
	if len(api.sent) != 0 {
		t.Errorf("Expected no sends, got %d", len(api.sent))
	}
}

func TestPublishErrors(t *testing.T) {
	api := &fakeAPI{err: &tgbotapi.Error{Code: http.StatusForbidden, Message: "Forbidden: bot is not a member of the channel chat"}}
	err := NewChannel(api, "@c").Publish(context.Background(), "x")
	var upstream *apperrors.UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusForbidden || upstream.Service != "telegram" {
		t.Errorf("Expected telegram UpstreamError 403, got %v", err)
	}

	api = &fakeAPI{err: errors.New("connection reset")}
	if err := NewChannel(api, "@c").Publish(context.Background(), "x"); !apperrors.IsTransport(err) {
		t.Errorf("Expected TransportError, got %v", err)
	}
}

func TestPublishCancelledContext(t *testing.T) {
	api := &fakeAPI{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewChannel(api, "@c").Publish(ctx, "x"); !apperrors.IsTransport(err) {
		t.Errorf("Expected TransportError, got %v", err)
	}
	if len(api.sent) != 0 {
		t.Error("Nothing should be sent on a cancelled context")
	}
}

func TestClassifyNil(t *testing.T) {
	if Classify(nil) != nil {
		t.Error("Classify(nil) must be nil")
	}
}
