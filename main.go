package main

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/vdracula/draft-bot/config"
	"github.com/vdracula/draft-bot/internal/ai"
	"github.com/vdracula/draft-bot/internal/autopost"
	"github.com/vdracula/draft-bot/internal/bot"
	"github.com/vdracula/draft-bot/internal/drafts"
	"github.com/vdracula/draft-bot/internal/ideas"
	"github.com/vdracula/draft-bot/internal/localization"
	"github.com/vdracula/draft-bot/internal/logger"
	"github.com/vdracula/draft-bot/internal/scheduler"
	"github.com/vdracula/draft-bot/internal/telegram"
)

//go:embed locales
var localeFiles embed.FS

const autopostJobTag = "autopost"

func main() {
	cfg, dotenvFound, err := config.LoadConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	if !dotenvFound {
		log.Debug().Msg("No .env file found, using process environment")
	}
	log.Info().Str("provider", cfg.CompletionProvider).Msg("Starting draft bot...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Bot stopped with error")
	}
	log.Info().Msg("Bot stopped")
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	localizer, err := localization.NewLocalizer(localeFiles, cfg.DefaultLanguage)
	if err != nil {
		return err
	}
	log.Info().Str("language", localizer.Language()).Msg("Messages loaded")

	queue := ideas.NewQueue(seedIdeas(cfg.IdeasFilePath, log))
	log.Info().Int("ideas", queue.Len()).Msg("Idea queue ready")

	generator, err := ai.NewGenerator(ctx, ai.Settings{
		Provider: cfg.CompletionProvider,
		APIKey:   cfg.CompletionAPIKey,
		FolderID: cfg.CompletionFolderID,
		Model:    cfg.CompletionModel,
		Endpoint: cfg.CompletionEndpoint,
		Timeout:  cfg.CompletionTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}
	if closer, ok := generator.(io.Closer); ok {
		defer closer.Close()
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("failed to connect to telegram: %w", err)
	}
	log.Info().Str("username", api.Self.UserName).Msg("Authorized on account")

	channel := telegram.NewChannel(api, cfg.ChannelID)
	if cfg.ChannelConfigured() {
		log.Info().Str("channel", channel.String()).Msg("Channel for autoposts")
	} else {
		log.Warn().Msg("CHANNEL_ID is not set, autoposts and channel sends are disabled")
	}
	poster := autopost.New(queue, generator, channel, log)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	times, err := cfg.ScheduleTimes()
	if err != nil {
		return err
	}
	appScheduler, err := scheduler.NewScheduler(loc, log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	for _, at := range times {
		name := autopostJobTag + "_" + at.String()
		if err := appScheduler.AddDailyJob(name, autopostJobTag, at.Hour, at.Minute, poster.Run); err != nil {
			return err
		}
	}

	telegramBot := bot.NewBot(api, bot.Options{
		Localizer: localizer,
		Generator: generator,
		Drafts:    drafts.NewStore(),
		Ideas:     queue,
		Importer:  ideas.NewImporter(nil, cfg.IdeasImportSelector),
		Poster:    poster,
		Channel:   channel,
		Schedule:  appScheduler,
		Times:     times,
		Location:  appScheduler.Location(),
		Logger:    log,
	})

	appScheduler.Start()
	defer func() {
		if err := appScheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to shut down scheduler")
		}
	}()

	log.Info().Msg("Bot is running...")
	telegramBot.Start(ctx)
	return nil
}

// seedIdeas loads the starting topics from path, falling back to the built-in
// list when no file is configured or it cannot be used.
func seedIdeas(path string, log zerolog.Logger) []string {
	if path == "" {
		return ideas.DefaultIdeas
	}
	seed, err := ideas.LoadSeedFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Could not load ideas file, using built-in ideas")
		return ideas.DefaultIdeas
	}
	return seed
}
