package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vdracula/draft-bot/internal/ideas"
)

const scheduleTimeLayout = "02.01.2006 15:04 MST"

func (b *TelegramBot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	switch message.Command() {
	case "start":
		b.sendText(chatID, b.localizer.Format("welcome_message", b.timesText(), b.channelText()))
	case "help":
		b.sendText(chatID, b.localizer.Format("help_message", b.timesText(), b.channelText()))
	case "schedule":
		b.handleScheduleCommand(chatID)
	case "test_post":
		b.handleTestPostCommand(ctx, chatID)
	case "add_idea":
		b.sessions.fire(message.From.ID, EventAddIdeaCommand)
		b.sendText(chatID, b.localizer.GetMessage("add_idea_prompt"))
	case "cancel":
		b.handleCancelCommand(message)
	case "import_ideas":
		b.handleImportIdeasCommand(ctx, message)
	default:
		b.logger.Debug().Str("command", message.Command()).Msg("Ignoring unknown command")
	}
}

func (b *TelegramBot) handleScheduleCommand(chatID int64) {
	var builder strings.Builder
	builder.WriteString(b.localizer.GetMessage("schedule_title"))
	jobs := b.schedule.Jobs()
	if len(jobs) == 0 {
		builder.WriteString(b.localizer.GetMessage("schedule_no_jobs"))
	}
	for _, job := range jobs {
		next := job.NextRun
		if b.location != nil {
			next = next.In(b.location)
		}
		builder.WriteString(b.localizer.Format("schedule_job_line", job.Name, next.Format(scheduleTimeLayout)))
	}
	builder.WriteString(b.localizer.Format("schedule_channel", b.channelText()))
	builder.WriteString(b.localizer.Format("schedule_remaining", b.ideas.Remaining()))
	b.sendText(chatID, builder.String())
}

// handleTestPostCommand runs an autopost right away and, unlike the scheduled
// run, reports the outcome to the caller.
func (b *TelegramBot) handleTestPostCommand(ctx context.Context, chatID int64) {
	b.sendText(chatID, b.localizer.GetMessage("test_post_generating"))
	if _, err := b.poster.Post(ctx); err != nil {
		b.logger.Error().Err(err).Msg("Test post failed")
		b.sendText(chatID, b.errorText("error_short", err))
		return
	}
	b.sendText(chatID, b.localizer.GetMessage("test_post_success"))
}

func (b *TelegramBot) handleCancelCommand(message *tgbotapi.Message) {
	from, _ := b.sessions.fire(message.From.ID, EventCancel)
	if from == StateAwaitingIdea {
		b.sendText(message.Chat.ID, b.localizer.GetMessage("cancel_done"))
		return
	}
	b.sendText(message.Chat.ID, b.localizer.GetMessage("cancel_nothing"))
}

func (b *TelegramBot) handleImportIdeasCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	rawURL := strings.TrimSpace(message.CommandArguments())
	if rawURL == "" {
		b.sendText(chatID, b.localizer.GetMessage("import_usage"))
		return
	}

	b.sendText(chatID, b.localizer.GetMessage("import_started"))
	topics, err := b.importer.Import(ctx, rawURL)
	if errors.Is(err, ideas.ErrNothingToImport) {
		b.sendText(chatID, b.localizer.GetMessage("import_nothing"))
		return
	}
	if err != nil {
		b.logger.Warn().Err(err).Str("url", rawURL).Msg("Idea import failed")
		b.sendText(chatID, b.errorText("error_short", err))
		return
	}

	total := b.ideas.Len()
	for _, topic := range topics {
		total = b.ideas.Append(topic)
	}
	b.logger.Info().Int("imported", len(topics)).Int("total", total).Str("url", rawURL).Msg("Ideas imported")
	b.sendText(chatID, b.localizer.Format("import_done", len(topics), total))
}
