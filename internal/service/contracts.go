package service

import (
	"context"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
	"github.com/aliskhannn/surah-reader-bot/internal/repository"
)

type ChapterRepository interface {
	GetByNumber(ctx context.Context, number int) (*entities.Chapter, error)
	GetAll(ctx context.Context) ([]entities.Chapter, error)
}

// FragmentRepository returns the fragments of one chapter keyed by "<chapter>:<verse>".
type FragmentRepository interface {
	Load(ctx context.Context, chapter int) (repository.FragmentStore, error)
}

// ViewRecorder counts how chapter views ended.
type ViewRecorder interface {
	ObserveChapterView(result string)
}

type nopViewRecorder struct{}

func (nopViewRecorder) ObserveChapterView(string) {}
