package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

const (
	catalogColumns  = 3
	catalogRows     = 6
	chaptersPerPage = catalogColumns * catalogRows
)

// handleCatalogCommand resets the chat to the catalog and sends its first page.
func (h *Handler) handleCatalogCommand() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		chapters, err := h.chapterService.List(ctx)
		if err != nil {
			return fmt.Errorf("list chapters: %w", err)
		}

		h.sessions.Reset(chatID)

		text, kb := buildCatalogPage(chapters, 0)
		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)

		return nil
	}
}

// handleCatalogCallback pages through the catalog.
func (h *Handler) handleCatalogCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	page, err := data.intParam(0)
	if err != nil {
		h.logger.Warn("invalid catalog callback", zap.String("data", data.Raw))
		h.answer(cb, "")
		return
	}

	chapters, err := h.chapterService.List(ctx)
	if err != nil {
		h.logger.Error("failed to list chapters", zap.Error(err))
		h.answer(cb, msgInternalError)
		return
	}

	if page >= catalogPages(len(chapters)) {
		h.logger.Warn("catalog page out of range", zap.Int("page", page))
		h.answer(cb, "")
		return
	}

	if !h.sessions.SetCatalogPage(chatID, page) {
		h.answer(cb, msgCloseSurahFirst)
		return
	}

	text, kb := buildCatalogPage(chapters, page)
	h.send(newHTMLEdit(chatID, cb.Message.MessageID, text, &kb))
	h.answer(cb, "")
}

func catalogPages(total int) int {
	return (total + chaptersPerPage - 1) / chaptersPerPage
}

// buildCatalogPage renders one page of the chapter grid.
func buildCatalogPage(chapters []entities.Chapter, page int) (string, tgbotapi.InlineKeyboardMarkup) {
	totalPages := catalogPages(len(chapters))

	start := page * chaptersPerPage
	end := min(start+chaptersPerPage, len(chapters))
	if start > end {
		start = end
	}

	text := fmt.Sprintf("<b>📖 Surahs</b>\nPage %d of %d\n\nSelect a surah to read its verses.", page+1, max(totalPages, 1))

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, ch := range chapters[start:end] {
		label := strconv.Itoa(ch.Number) + ". " + ch.EnglishName
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildSurahCallback(ch.Number, page)))
		if len(row) == catalogColumns {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if nav := buildPagerRow(page, totalPages, buildCatalogCallback(page-1), buildCatalogCallback(page+1)); nav != nil {
		rows = append(rows, nav)
	}

	return text, tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildPagerRow builds the previous/next row, or nil for a single page.
func buildPagerRow(page, totalPages int, prevData, nextData string) []tgbotapi.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", prevData))
	}
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", nextData))
	}

	return row
}
