package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

// Chapter view results reported to the ViewRecorder.
const (
	ViewVerses = "verses"
	ViewEmpty  = "empty"
	ViewError  = "error"
)

type ChapterService struct {
	chapters  ChapterRepository
	fragments FragmentRepository
	logger    *zap.Logger
	recorder  ViewRecorder
}

func NewChapterService(
	chapters ChapterRepository,
	fragments FragmentRepository,
	logger *zap.Logger,
	recorder ViewRecorder,
) *ChapterService {
	if recorder == nil {
		recorder = nopViewRecorder{}
	}
	return &ChapterService{
		chapters:  chapters,
		fragments: fragments,
		logger:    logger,
		recorder:  recorder,
	}
}

func (s *ChapterService) List(ctx context.Context) ([]entities.Chapter, error) {
	return s.chapters.GetAll(ctx)
}

func (s *ChapterService) Get(ctx context.Context, number int) (*entities.Chapter, error) {
	return s.chapters.GetByNumber(ctx, number)
}

// OpenChapter loads and assembles the verses of one chapter.
// A chapter whose fragments cannot be loaded yields an empty set, not an error;
// only data integrity problems in a successfully loaded asset are returned.
func (s *ChapterService) OpenChapter(ctx context.Context, number int) (*entities.ChapterVerseSet, error) {
	if _, err := s.chapters.GetByNumber(ctx, number); err != nil {
		return nil, err
	}

	store, err := s.fragments.Load(ctx, number)
	if err != nil {
		s.logger.Error("failed to load verse fragments",
			zap.Int("chapter", number),
			zap.Error(err),
		)
		s.recorder.ObserveChapterView(ViewEmpty)
		return entities.NewEmptyVerseSet(number), nil
	}

	set, skipped, err := AssembleVerses(number, store)
	for _, key := range skipped {
		s.logger.Warn("skipped malformed fragment key",
			zap.Int("chapter", number),
			zap.String("key", key),
		)
	}
	if err != nil {
		s.recorder.ObserveChapterView(ViewError)
		return nil, fmt.Errorf("assemble chapter %d: %w", number, err)
	}

	if set.Empty() {
		s.recorder.ObserveChapterView(ViewEmpty)
	} else {
		s.recorder.ObserveChapterView(ViewVerses)
	}

	s.logger.Debug("chapter assembled",
		zap.Int("chapter", number),
		zap.Int("verses", len(set.Verses)),
	)

	return set, nil
}
