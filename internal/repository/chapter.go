package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

var (
	ErrChapterNotFound      = errors.New("chapter not found")
	ErrInvalidChapterNumber = errors.New("invalid chapter number")
	ErrInvalidCatalog       = errors.New("invalid chapter catalog")
)

// ChapterRepository provides read-only access to the 114 surahs.
// The catalog is indexed by number and never mutated after construction.
type ChapterRepository struct {
	chapters []*entities.Chapter // chapters[i].Number == i+1
}

// NewChapterRepository parses the bundled chapter table.
func NewChapterRepository(data []byte) (*ChapterRepository, error) {
	var wrapper struct {
		Chapters []*entities.Chapter `json:"chapters"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chapters JSON: %w", err)
	}

	return NewChapterRepositoryFrom(wrapper.Chapters)
}

// NewChapterRepositoryFrom builds the catalog from already decoded records.
func NewChapterRepositoryFrom(chapters []*entities.Chapter) (*ChapterRepository, error) {
	if len(chapters) != entities.TotalChapters {
		return nil, fmt.Errorf("%w: expected %d chapters, got %d",
			ErrInvalidCatalog, entities.TotalChapters, len(chapters))
	}

	validate := validator.New()
	index := make([]*entities.Chapter, entities.TotalChapters)

	for _, ch := range chapters {
		if ch == nil {
			return nil, fmt.Errorf("%w: nil chapter record", ErrInvalidCatalog)
		}
		if err := validate.Struct(ch); err != nil {
			return nil, fmt.Errorf("%w: chapter %d: %w", ErrInvalidCatalog, ch.Number, err)
		}

		slot := ch.Number - 1
		if index[slot] != nil {
			return nil, fmt.Errorf("%w: duplicate chapter %d", ErrInvalidCatalog, ch.Number)
		}

		c := *ch
		index[slot] = &c
	}

	return &ChapterRepository{chapters: index}, nil
}

// GetByNumber retrieves a chapter by its number (1-114).
func (r *ChapterRepository) GetByNumber(_ context.Context, number int) (*entities.Chapter, error) {
	if !entities.ValidChapterNumber(number) {
		return nil, ErrInvalidChapterNumber
	}

	ch := r.chapters[number-1]
	if ch == nil {
		return nil, ErrChapterNotFound
	}

	c := *ch
	return &c, nil
}

// GetAll retrieves all chapters ordered by number.
func (r *ChapterRepository) GetAll(_ context.Context) ([]entities.Chapter, error) {
	result := make([]entities.Chapter, 0, len(r.chapters))
	for _, ch := range r.chapters {
		result = append(result, *ch)
	}

	return result, nil
}

// Count returns the number of chapters in the catalog.
func (r *ChapterRepository) Count() int {
	return len(r.chapters)
}
