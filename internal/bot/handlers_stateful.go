package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vdracula/draft-bot/internal/ai"
)

// handleText routes free text by the state the user was in when it arrived.
func (b *TelegramBot) handleText(ctx context.Context, message *tgbotapi.Message) {
	from, _ := b.sessions.fire(message.From.ID, EventText)
	switch from {
	case StateAwaitingIdea:
		b.handleIdeaInput(message)
	default:
		b.handleDraft(ctx, message)
	}
}

func (b *TelegramBot) handleIdeaInput(message *tgbotapi.Message) {
	total := b.ideas.Append(strings.TrimSpace(message.Text))
	b.logger.Info().Int64("user_id", message.From.ID).Int("total", total).Msg("Idea added")
	b.sendText(message.Chat.ID, b.localizer.Format("idea_added", total))
}

// handleDraft stores the text as the user's new draft and replies with a post
// written from it. A failed generation leaves the draft without a post.
func (b *TelegramBot) handleDraft(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID
	draft := b.drafts.Submit(userID, strings.TrimSpace(message.Text))

	b.sendText(chatID, b.localizer.GetMessage("thinking"))
	post, err := b.generator.Generate(ctx, ai.Request{Content: draft.Text, Style: draft.Style})
	if err != nil {
		b.logger.Error().Err(err).Int64("user_id", userID).Msg("Draft generation failed")
		b.sendText(chatID, b.errorText("error_long", err))
		return
	}
	b.drafts.SetLastPost(userID, post)
	b.logger.Debug().Int64("user_id", userID).Int("drafts", b.drafts.Len()).Msg("Draft generated")
	b.sendPost(chatID, post)
}
