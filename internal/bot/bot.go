package bot

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/vdracula/draft-bot/config"
	"github.com/vdracula/draft-bot/internal/ai"
	"github.com/vdracula/draft-bot/internal/drafts"
	"github.com/vdracula/draft-bot/internal/localization"
	"github.com/vdracula/draft-bot/internal/scheduler"
	"github.com/vdracula/draft-bot/internal/telegram"
)

type IdeaQueue interface {
	Append(idea string) int
	Len() int
	Remaining() int
}

type IdeaImporter interface {
	Import(ctx context.Context, rawURL string) ([]string, error)
}

// Poster publishes one autopost on demand.
type Poster interface {
	Post(ctx context.Context) (string, error)
}

// Schedule exposes the registered autopost jobs.
type Schedule interface {
	Jobs() []scheduler.JobInfo
}

type Options struct {
	Localizer *localization.Localizer
	Generator ai.Generator
	Drafts    *drafts.Store
	Ideas     IdeaQueue
	Importer  IdeaImporter
	Poster    Poster
	Channel   *telegram.Channel
	Schedule  Schedule
	Times     []config.ClockTime
	Location  *time.Location
	Logger    zerolog.Logger
}

type TelegramBot struct {
	api       telegram.BotAPI
	localizer *localization.Localizer
	generator ai.Generator
	drafts    *drafts.Store
	ideas     IdeaQueue
	importer  IdeaImporter
	poster    Poster
	channel   *telegram.Channel
	schedule  Schedule
	times     []config.ClockTime
	location  *time.Location
	logger    zerolog.Logger

	sessions *sessions

	queueMutex sync.Mutex
	pending    map[int64][]tgbotapi.Update
	workers    sync.WaitGroup
}

func NewBot(api telegram.BotAPI, opts Options) *TelegramBot {
	d := opts.Drafts
	if d == nil {
		d = drafts.NewStore()
	}
	return &TelegramBot{
		api:       api,
		localizer: opts.Localizer,
		generator: opts.Generator,
		drafts:    d,
		ideas:     opts.Ideas,
		importer:  opts.Importer,
		poster:    opts.Poster,
		channel:   opts.Channel,
		schedule:  opts.Schedule,
		times:     opts.Times,
		location:  opts.Location,
		logger:    opts.Logger.With().Str("component", "bot").Logger(),
		sessions:  newSessions(),
		pending:   make(map[int64][]tgbotapi.Update),
	}
}

// Start long-polls for updates until ctx is cancelled, then waits for the
// handlers still running.
func (b *TelegramBot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)
	b.logger.Info().Msg("Listening for updates")

	defer b.workers.Wait()
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info().Msg("Stopped receiving updates")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.enqueue(ctx, update)
		}
	}
}

// enqueue hands the update to its user's worker. Updates of one user are
// handled one at a time in arrival order; different users run in parallel.
func (b *TelegramBot) enqueue(ctx context.Context, update tgbotapi.Update) {
	userID := senderID(update)
	b.queueMutex.Lock()
	queue, running := b.pending[userID]
	b.pending[userID] = append(queue, update)
	b.queueMutex.Unlock()
	if running {
		return
	}
	b.workers.Add(1)
	go b.drain(ctx, userID)
}

func (b *TelegramBot) drain(ctx context.Context, userID int64) {
	defer b.workers.Done()
	for {
		b.queueMutex.Lock()
		queue := b.pending[userID]
		if len(queue) == 0 {
			delete(b.pending, userID)
			b.queueMutex.Unlock()
			return
		}
		update := queue[0]
		b.pending[userID] = queue[1:]
		b.queueMutex.Unlock()

		b.HandleUpdate(ctx, update)
	}
}

// HandleUpdate routes one update to its handler and returns when it is done.
func (b *TelegramBot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Interface("panic", r).Int("update_id", update.UpdateID).Msg("Handler panicked")
		}
	}()

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}
	message := update.Message
	if message == nil || message.From == nil || message.Chat == nil {
		return
	}
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}
	if message.Text == "" {
		return
	}
	b.handleText(ctx, message)
}
