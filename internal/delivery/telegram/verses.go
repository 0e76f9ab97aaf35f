package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

// maxPageRunes keeps a rendered verse page, header included, below
// Telegram's 4096 character limit.
const maxPageRunes = 3500

// loadResult is a finished verse load on its way back to the update loop.
type loadResult struct {
	chatID     int64
	messageID  int
	chapter    entities.Chapter
	generation uint64
	verses     *entities.ChapterVerseSet
	err        error
}

// handleSurahCallback moves the chat to the detail screen and starts loading.
func (h *Handler) handleSurahCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	number, err1 := data.intParam(0)
	catalogPage, err2 := data.intParam(1)
	if err1 != nil || err2 != nil {
		h.logger.Warn("invalid surah callback", zap.String("data", data.Raw))
		h.answer(cb, "")
		return
	}

	chapter, err := h.chapterService.Get(ctx, number)
	if err != nil {
		h.logger.Warn("failed to get chapter",
			zap.Int("chapter", number),
			zap.Error(err),
		)
		h.answer(cb, msgChapterNotFound)
		return
	}

	generation, ok := h.sessions.Select(chatID, chapter.Number, catalogPage)
	if !ok {
		h.answer(cb, msgCloseSurahFirst)
		return
	}

	kb := buildVersesKeyboard(chapter.Number, 0, 0)
	loading := chapterHeader(*chapter) + "\n\n" + h.theme.Palette().Loading + " " + msgLoading
	h.send(newHTMLEdit(chatID, cb.Message.MessageID, loading, &kb))
	h.answer(cb, "")

	h.startLoad(ctx, chatID, cb.Message.MessageID, *chapter, generation)
}

// startLoad runs the fragment load for one detail screen in the background.
func (h *Handler) startLoad(ctx context.Context, chatID int64, messageID int, chapter entities.Chapter, generation uint64) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		verses, err := h.chapterService.OpenChapter(ctx, chapter.Number)
		res := loadResult{
			chatID:     chatID,
			messageID:  messageID,
			chapter:    chapter,
			generation: generation,
			verses:     verses,
			err:        err,
		}

		select {
		case h.results <- res:
		case <-ctx.Done():
		}
	}()
}

// applyLoad renders a finished load unless the user already left the screen.
func (h *Handler) applyLoad(res loadResult) {
	verses := res.verses
	if res.err != nil {
		h.logger.Error("failed to open chapter",
			zap.Int64("chat_id", res.chatID),
			zap.Int("chapter", res.chapter.Number),
			zap.Error(res.err),
		)
		verses = entities.NewEmptyVerseSet(res.chapter.Number)
	}

	if !h.sessions.Complete(res.chatID, res.generation, verses) {
		h.logger.Debug("discarding stale verse load",
			zap.Int64("chat_id", res.chatID),
			zap.Int("chapter", res.chapter.Number),
			zap.Uint64("generation", res.generation),
		)
		h.recorder.ObserveStaleResult()
		return
	}

	pages := buildVersePages(verses, h.theme.Palette())
	kb := buildVersesKeyboard(res.chapter.Number, 0, len(pages))
	h.send(newHTMLEdit(res.chatID, res.messageID, renderVersePage(res.chapter, pages, 0), &kb))
}

// handleVersesCallback pages through the verses held for the open chapter.
func (h *Handler) handleVersesCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	number, err1 := data.intParam(0)
	page, err2 := data.intParam(1)
	if err1 != nil || err2 != nil {
		h.logger.Warn("invalid verses callback", zap.String("data", data.Raw))
		h.answer(cb, "")
		return
	}

	verses, ok := h.sessions.Verses(chatID, number)
	if !ok {
		h.answer(cb, msgVersesExpired)
		return
	}

	chapter, err := h.chapterService.Get(ctx, number)
	if err != nil {
		h.logger.Error("failed to get chapter", zap.Int("chapter", number), zap.Error(err))
		h.answer(cb, msgInternalError)
		return
	}

	pages := buildVersePages(verses, h.theme.Palette())
	if page >= max(len(pages), 1) {
		h.logger.Warn("verse page out of range", zap.Int("page", page), zap.Int("total_pages", len(pages)))
		h.answer(cb, "")
		return
	}

	kb := buildVersesKeyboard(number, page, len(pages))
	h.send(newHTMLEdit(chatID, cb.Message.MessageID, renderVersePage(*chapter, pages, page), &kb))
	h.answer(cb, "")
}

// handleBackCallback leaves the detail screen and restores the catalog page.
func (h *Handler) handleBackCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	page, ok := h.sessions.Back(chatID)
	if !ok {
		h.answer(cb, msgNothingToGoBackTo)
		return
	}

	chapters, err := h.chapterService.List(ctx)
	if err != nil {
		h.logger.Error("failed to list chapters", zap.Error(err))
		h.answer(cb, msgInternalError)
		return
	}

	text, kb := buildCatalogPage(chapters, page)
	h.send(newHTMLEdit(chatID, cb.Message.MessageID, text, &kb))
	h.answer(cb, "")
}

func buildVersesKeyboard(number, page, totalPages int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if nav := buildPagerRow(page, totalPages, buildVersesCallback(number, page-1), buildVersesCallback(number, page+1)); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("← Back", buildBackCallback()),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// renderVersePage puts the chapter header in front of one page of verses.
func renderVersePage(ch entities.Chapter, pages []string, page int) string {
	header := chapterHeader(ch)
	if len(pages) == 0 {
		return header + "\n\n" + msgNoVerses
	}
	if len(pages) > 1 {
		header += fmt.Sprintf("\n<i>Page %d of %d</i>", page+1, len(pages))
	}
	return header + "\n\n" + pages[page]
}

// buildVersePages renders verses into pages of at most maxPageRunes.
// A verse too long for one page is split between its fragments, and a
// fragment too long for one page is cut inside its text.
func buildVersePages(set *entities.ChapterVerseSet, palette entities.Palette) []string {
	if set.Empty() {
		return nil
	}

	var pages []string
	var current strings.Builder
	separator := "\n" + palette.Divider + "\n"

	flush := func() {
		if current.Len() > 0 {
			pages = append(pages, current.String())
			current.Reset()
		}
	}
	add := func(block, sep string) {
		if current.Len() > 0 && utf8.RuneCountInString(current.String())+utf8.RuneCountInString(sep+block) > maxPageRunes {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(block)
	}

	for _, verse := range set.Verses {
		block := renderVerse(verse, palette)
		if utf8.RuneCountInString(block) <= maxPageRunes {
			add(block, separator)
			continue
		}

		// Oversized verse: first the number, then fragment by fragment.
		add(verseHeading(verse, palette), separator)
		for _, f := range verse.Fragments {
			if fb := renderFragment(f); utf8.RuneCountInString(fb) <= maxPageRunes {
				add(fb, "\n")
				continue
			}
			for _, part := range splitFragment(f) {
				add(part, "\n")
			}
		}
	}
	flush()

	return pages
}

// splitFragment renders a fragment too long for one page as several blocks,
// each of which fits a page on its own.
func splitFragment(f entities.Fragment) []string {
	// Room for the widest wrapper, "<i></i>".
	limit := maxPageRunes - 7

	var blocks []string
	for _, chunk := range chunkEscaped(f.OriginalText, limit) {
		blocks = append(blocks, rlm+chunk)
	}
	for _, chunk := range chunkEscaped(f.TranslatedText, limit) {
		blocks = append(blocks, "<i>"+chunk+"</i>")
	}
	return blocks
}

// chunkEscaped escapes s and cuts it at rune boundaries into pieces of at
// most limit runes. Entities such as "&amp;" are never split.
func chunkEscaped(s string, limit int) []string {
	var chunks []string
	var sb strings.Builder
	n := 0

	for _, r := range s {
		e := esc(string(r))
		w := utf8.RuneCountInString(e)
		if n > 0 && n+w > limit {
			chunks = append(chunks, sb.String())
			sb.Reset()
			n = 0
		}
		sb.WriteString(e)
		n += w
	}
	if n > 0 {
		chunks = append(chunks, sb.String())
	}

	return chunks
}

func verseHeading(v entities.VerseEntry, palette entities.Palette) string {
	return palette.VerseMarker + " <b>" + strconv.Itoa(v.Number) + "</b>"
}

func renderVerse(v entities.VerseEntry, palette entities.Palette) string {
	var sb strings.Builder
	sb.WriteString(verseHeading(v, palette))
	for _, f := range v.Fragments {
		sb.WriteString("\n")
		sb.WriteString(renderFragment(f))
	}
	return sb.String()
}

func renderFragment(f entities.Fragment) string {
	return rlm + esc(f.OriginalText) + "\n<i>" + esc(f.TranslatedText) + "</i>"
}
