package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vdracula/draft-bot/internal/ai"
	"github.com/vdracula/draft-bot/internal/apperrors"
	"github.com/vdracula/draft-bot/internal/drafts"
)

var (
	errNoDraft = &apperrors.UserStateError{Reason: "no draft submitted"}
	errNoPost  = &apperrors.UserStateError{Reason: "no post generated yet"}
)

func (b *TelegramBot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.From == nil {
		return
	}
	switch {
	case strings.HasPrefix(callback.Data, CallbackPrefixAction):
		action, ok := ai.ParseAction(strings.TrimPrefix(callback.Data, CallbackPrefixAction))
		if !ok {
			b.answerCallback(callback.ID, "", false)
			return
		}
		b.handleRefine(ctx, callback, action)
	case callback.Data == CallbackSendChannel:
		b.handleSendToChannel(ctx, callback)
	default:
		b.answerCallback(callback.ID, "", false)
	}
}

// handleRefine rewrites the user's original draft with the action applied.
// The previous generated post is never fed back in.
func (b *TelegramBot) handleRefine(ctx context.Context, callback *tgbotapi.CallbackQuery, action ai.Action) {
	chatID := callbackChatID(callback)
	draft, err := b.draftFor(callback.From.ID)
	if err != nil {
		b.answerCallback(callback.ID, b.localizer.GetMessage("need_draft"), true)
		return
	}
	defer b.answerCallback(callback.ID, "", false)

	b.sendText(chatID, b.localizer.GetMessage("reworking"))
	post, err := b.generator.Generate(ctx, ai.Request{Content: draft.Text, Style: draft.Style, Action: action})
	if err != nil {
		b.logger.Error().Err(err).Str("action", string(action)).Int64("user_id", callback.From.ID).Msg("Refinement failed")
		b.sendText(chatID, b.errorText("error_long", err))
		return
	}
	b.drafts.SetLastPost(callback.From.ID, post)
	b.sendPost(chatID, post)
}

func (b *TelegramBot) handleSendToChannel(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callbackChatID(callback)
	err := b.publishLastPost(ctx, callback.From.ID)
	switch {
	case err == nil:
		b.sendText(chatID, b.localizer.GetMessage("sent_to_channel"))
		b.answerCallback(callback.ID, "", false)
	case errors.Is(err, errNoDraft), errors.Is(err, errNoPost):
		b.answerCallback(callback.ID, b.localizer.GetMessage("need_post"), true)
	case apperrors.IsConfiguration(err):
		b.answerCallback(callback.ID, b.localizer.GetMessage("channel_missing_alert"), true)
	default:
		b.logger.Error().Err(err).Int64("user_id", callback.From.ID).Msg("Channel send failed")
		b.sendText(chatID, b.errorText("send_failed", err))
		b.answerCallback(callback.ID, "", false)
	}
}

// publishLastPost sends the user's latest post to the channel verbatim. The
// draft is kept so the user can refine and send again.
func (b *TelegramBot) publishLastPost(ctx context.Context, userID int64) error {
	draft, err := b.draftFor(userID)
	if err != nil {
		return err
	}
	if !draft.HasPost {
		return errNoPost
	}
	if err := b.channel.Publish(ctx, draft.LastPost); err != nil {
		return err
	}
	b.logger.Info().Int64("user_id", userID).Msg("Post sent to channel")
	return nil
}

func (b *TelegramBot) draftFor(userID int64) (drafts.Draft, error) {
	draft, ok := b.drafts.Get(userID)
	if !ok {
		return drafts.Draft{}, errNoDraft
	}
	return draft, nil
}
