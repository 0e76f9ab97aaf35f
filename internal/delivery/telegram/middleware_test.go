package telegram

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
	"github.com/aliskhannn/surah-reader-bot/internal/storage"
)

type failingChapters struct {
	err error
}

func (s failingChapters) List(context.Context) ([]entities.Chapter, error) {
	return nil, s.err
}

func (s failingChapters) Get(context.Context, int) (*entities.Chapter, error) {
	return nil, s.err
}

func (s failingChapters) OpenChapter(context.Context, int) (*entities.ChapterVerseSet, error) {
	return nil, s.err
}

func TestWithErrorHandling(t *testing.T) {
	ctx := context.Background()

	newHandler := func(err error) (*Handler, *fakeBot) {
		bot := &fakeBot{updates: make(chan tgbotapi.Update)}
		h := NewHandler(bot, zap.NewNop(), failingChapters{err: err}, storage.NewSessionStorage(), Options{})
		return h, bot
	}

	t.Run("Should tell the chat when a command fails", func(t *testing.T) {
		h, bot := newHandler(errors.New("catalog unavailable"))
		h.handleUpdate(ctx, command("/surahs"))

		msg, ok := bot.last().(tgbotapi.MessageConfig)
		require.True(t, ok)
		assert.Equal(t, msgInternalError, msg.Text)
	})

	t.Run("Should stay silent when interrupted by shutdown", func(t *testing.T) {
		h, bot := newHandler(fmt.Errorf("list chapters: %w", context.Canceled))
		err := h.withErrorHandling("surahs", h.handleCatalogCommand())(ctx, testChatID)

		require.NoError(t, err)
		assert.Zero(t, bot.sentCount())
	})
}
