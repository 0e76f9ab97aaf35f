package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type ChapterService interface {
	List(ctx context.Context) ([]entities.Chapter, error)
	Get(ctx context.Context, number int) (*entities.Chapter, error)
	OpenChapter(ctx context.Context, number int) (*entities.ChapterVerseSet, error)
}

type SessionStorage interface {
	Select(chatID int64, chapter, catalogPage int) (uint64, bool)
	Complete(chatID int64, generation uint64, verses *entities.ChapterVerseSet) bool
	Back(chatID int64) (int, bool)
	Reset(chatID int64)
	SetCatalogPage(chatID int64, page int) bool
	Verses(chatID int64, chapter int) (*entities.ChapterVerseSet, bool)
}

// StaleRecorder counts loads discarded by the stale-write guard.
type StaleRecorder interface {
	ObserveStaleResult()
}

type nopStaleRecorder struct{}

func (nopStaleRecorder) ObserveStaleResult() {}
