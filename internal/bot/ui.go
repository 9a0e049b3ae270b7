package bot

import (
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *TelegramBot) actionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.localizer.GetMessage("btn_shorter"), CallbackShorter),
			tgbotapi.NewInlineKeyboardButtonData(b.localizer.GetMessage("btn_longer"), CallbackLonger),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.localizer.GetMessage("btn_send_to_channel"), CallbackSendChannel),
		),
	)
}

// sendPost delivers a generated post, split into chunks when it is long.
// Only the last chunk carries the action keyboard.
func (b *TelegramBot) sendPost(chatID int64, post string) {
	chunks := SplitMessage(post, MaxMessageLength)
	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if i == len(chunks)-1 {
			msg.ReplyMarkup = b.actionKeyboard()
		}
		b.send(msg)
	}
}

func (b *TelegramBot) channelText() string {
	if !b.channel.Configured() {
		return b.localizer.GetMessage("channel_not_configured")
	}
	return b.channel.String()
}

// timesText renders the autopost times, e.g. "10:00 и 18:00 MSK".
func (b *TelegramBot) timesText() string {
	times := make([]string, 0, len(b.times))
	for _, t := range b.times {
		times = append(times, t.String())
	}
	text := strings.Join(times, b.localizer.GetMessage("times_separator"))
	return strings.TrimSpace(text + " " + zoneName(b.location))
}

func zoneName(loc *time.Location) string {
	if loc == nil {
		return ""
	}
	name, _ := time.Now().In(loc).Zone()
	return name
}
