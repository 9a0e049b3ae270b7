package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vdracula/draft-bot/internal/apperrors"
	"github.com/vdracula/draft-bot/internal/telegram"
)

func (b *TelegramBot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error().Err(telegram.Classify(err)).Msg("Failed to send message")
	}
}

func (b *TelegramBot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *TelegramBot) answerCallback(id, text string, alert bool) {
	answer := tgbotapi.NewCallback(id, text)
	answer.ShowAlert = alert
	if _, err := b.api.Request(answer); err != nil {
		b.logger.Error().Err(telegram.Classify(err)).Msg("Failed to answer callback query")
	}
}

// senderID is the user an update belongs to, or 0 for updates without one.
func senderID(update tgbotapi.Update) int64 {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	}
	return 0
}

func callbackChatID(cb *tgbotapi.CallbackQuery) int64 {
	if cb.Message != nil && cb.Message.Chat != nil {
		return cb.Message.Chat.ID
	}
	return cb.From.ID
}

// errorText renders err into a user-facing message that fits one Telegram message.
func (b *TelegramBot) errorText(key string, err error) string {
	return b.localizer.Format(key, apperrors.Truncate(err.Error(), maxErrorRunes))
}
