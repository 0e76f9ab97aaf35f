package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aliskhannn/surah-reader-bot/internal/assets"
	"github.com/aliskhannn/surah-reader-bot/internal/config"
	"github.com/aliskhannn/surah-reader-bot/internal/delivery/telegram"
	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
	"github.com/aliskhannn/surah-reader-bot/internal/infra/postgres"
	pgrepository "github.com/aliskhannn/surah-reader-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/surah-reader-bot/internal/logger"
	"github.com/aliskhannn/surah-reader-bot/internal/metrics"
	"github.com/aliskhannn/surah-reader-bot/internal/repository"
	"github.com/aliskhannn/surah-reader-bot/internal/service"
	"github.com/aliskhannn/surah-reader-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Telegram.Debug

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start the bot",
		},
		{
			Command:     "surahs",
			Description: "Browse the surahs",
		},
		{
			Command:     "help",
			Description: "Help",
		},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr, lg); err != nil {
				lg.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	// Initialize repositories and services.
	chapterRepo, err := loadChapters(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to load chapter catalog", zap.Error(err))
	}

	fragmentRepo := repository.NewFragmentRepository(
		lg,
		primarySource(cfg),
		repository.NewEmbeddedSource(assets.Fragments),
		repository.WithCache(cfg.Fragments.Cache),
		repository.WithRecorder(m),
	)

	chapterService := service.NewChapterService(chapterRepo, fragmentRepo, lg, m)
	sessions := storage.NewSessionStorage()

	handler := telegram.NewHandler(
		bot,
		lg,
		chapterService,
		sessions,
		telegram.Options{
			Theme:         entities.ParseTheme(cfg.Theme),
			UpdateTimeout: cfg.Telegram.UpdateTimeout,
			Recorder:      m,
		},
	)

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	handler.Wait()
	lg.Info("shutdown complete")
}

// primarySource picks where the fragment asset is read from before falling
// back to the bundled copy.
func primarySource(cfg *config.Config) repository.Source {
	if cfg.Fragments.URL != "" {
		return repository.NewHTTPSource(resty.New(), cfg.Fragments.URL)
	}
	if cfg.Fragments.Path != "" {
		return repository.NewFileSource(afero.NewOsFs(), cfg.Fragments.Path)
	}
	return repository.NewEmbeddedSource(assets.Fragments)
}

// loadChapters builds the catalog from the database when one is configured,
// otherwise from the bundled table.
func loadChapters(ctx context.Context, cfg *config.Config, lg *zap.Logger) (*repository.ChapterRepository, error) {
	if !cfg.DB.Enabled() {
		return repository.NewChapterRepository(assets.Chapters)
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	chapters, err := pgrepository.NewChapterRepository(pool).GetAll(ctx)
	if err != nil {
		return nil, err
	}

	lg.Info("chapter catalog loaded from database", zap.Int("chapters", len(chapters)))

	return repository.NewChapterRepositoryFrom(chapters)
}
