package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

// Options tune the handler.
type Options struct {
	Theme         entities.Theme // light/dark preference applied to every screen
	UpdateTimeout int            // long polling timeout in seconds
	Recorder      StaleRecorder
}

type Handler struct {
	bot            BotAPI
	logger         *zap.Logger
	chapterService ChapterService
	sessions       SessionStorage
	recorder       StaleRecorder
	theme          entities.Theme
	updateTimeout  int

	// results carries finished verse loads back to the update loop,
	// so screens are only ever edited from one goroutine.
	results chan loadResult
	wg      sync.WaitGroup
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	chapterService ChapterService,
	sessions SessionStorage,
	opts Options,
) *Handler {
	if opts.Recorder == nil {
		opts.Recorder = nopStaleRecorder{}
	}
	if opts.UpdateTimeout <= 0 {
		opts.UpdateTimeout = 60
	}
	if opts.Theme == "" {
		opts.Theme = entities.ThemeLight
	}

	return &Handler{
		bot:            bot,
		logger:         logger,
		chapterService: chapterService,
		sessions:       sessions,
		recorder:       opts.Recorder,
		theme:          opts.Theme,
		updateTimeout:  opts.UpdateTimeout,
		results:        make(chan loadResult),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started", zap.String("theme", string(h.theme)))
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.updateTimeout

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		case res := <-h.results:
			h.applyLoad(res)
		}
	}
}

// Wait blocks until every in-flight verse load has returned.
func (h *Handler) Wait() {
	h.wg.Wait()
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			h.send(newHTMLMessage(chatID, welcomeHTML()))
			_ = h.withErrorHandling(update.Message.Command(), h.handleCatalogCommand())(ctx, chatID)

		case "surahs":
			_ = h.withErrorHandling(update.Message.Command(), h.handleCatalogCommand())(ctx, chatID)

		case "help":
			h.send(newHTMLMessage(chatID, msgHelp))

		default:
			h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}

		return
	}

	h.send(newHTMLMessage(chatID, msgUseCatalog))
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func (h *Handler) answer(cb *tgbotapi.CallbackQuery, text string) {
	// Remove the user's "clock".
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
