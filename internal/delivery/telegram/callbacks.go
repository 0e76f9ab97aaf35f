package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answer(cb, "")
		return
	}

	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionCatalog:
		h.handleCatalogCallback(ctx, cb, data)
	case actionSurah:
		h.handleSurahCallback(ctx, cb, data)
	case actionVerses:
		h.handleVersesCallback(ctx, cb, data)
	case actionBack:
		h.handleBackCallback(ctx, cb)
	default:
		h.logger.Warn("unknown callback action",
			zap.String("data", cb.Data),
		)
		h.answer(cb, "")
	}
}
