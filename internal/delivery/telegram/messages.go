// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

// User facing messages.
const (
	msgHelp = "<b>Commands</b>\n\n" +
		"/surahs — browse the 114 surahs\n" +
		"/help — show this message\n\n" +
		"Pick a surah from the list to read its verses with translation. Use ← Back to return to the list."
	msgUnknownCommand    = "Unknown command.\n\n/surahs — browse the surahs\n/help — help"
	msgUseCatalog        = "Use /surahs and pick a surah from the list."
	msgInternalError     = "Something went wrong. Please try again later."
	msgChapterNotFound   = "This surah is not available."
	msgCloseSurahFirst   = "Close the open surah first (← Back) or send /surahs."
	msgNothingToGoBackTo = "You are already on the surah list."
	msgVersesExpired     = "This page is no longer open. Send /surahs to start again."
	msgLoading           = "Loading verses..."
	msgNoVerses          = "No verses available for this surah."
)

const rlm = "\u200F"

// esc escapes dataset text for HTML parse mode.
func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

func welcomeHTML() string {
	var sb strings.Builder

	sb.WriteString(esc("السلام عليكم ورحمة الله وبركاته"))
	sb.WriteString("\n\n")
	sb.WriteString("<b>Surah Reader</b> shows the verses of every surah of the Quran ")
	sb.WriteString("in the original script alongside an English translation.\n\n")
	sb.WriteString("Pick a surah below to start reading.")

	return sb.String()
}

// chapterHeader renders the detail screen title.
func chapterHeader(ch entities.Chapter) string {
	return fmt.Sprintf("<b>%d. %s</b>\n%s%s • %d verses",
		ch.Number,
		esc(ch.EnglishName),
		rlm,
		esc(ch.NativeName),
		ch.VerseCount,
	)
}

// newHTMLMessage creates a message with HTML parse mode.
func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// newHTMLEdit creates an edit with HTML parse mode and an optional keyboard.
func newHTMLEdit(chatID int64, msgID int, text string, kb *tgbotapi.InlineKeyboardMarkup) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = kb
	return edit
}
