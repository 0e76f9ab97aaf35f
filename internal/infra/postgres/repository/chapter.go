package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
	"github.com/aliskhannn/surah-reader-bot/internal/infra/postgres"
)

var ErrChapterNotFound = errors.New("chapter not found")

// ChapterRepository reads the surah table from the database.
// It never writes; the catalog is loaded once at startup.
type ChapterRepository struct {
	db postgres.DBTX
}

// NewChapterRepository creates a new ChapterRepository with the provided database pool.
func NewChapterRepository(db postgres.DBTX) *ChapterRepository {
	return &ChapterRepository{db: db}
}

// GetAll retrieves all chapters ordered by number.
func (r *ChapterRepository) GetAll(ctx context.Context) ([]*entities.Chapter, error) {
	query := `SELECT number, english_name, native_name, verse_count FROM chapters ORDER BY number`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*entities.Chapter
	for rows.Next() {
		var ch entities.Chapter
		if err := rows.Scan(&ch.Number, &ch.EnglishName, &ch.NativeName, &ch.VerseCount); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, &ch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}

	return chapters, nil
}

// GetByNumber retrieves a single chapter.
func (r *ChapterRepository) GetByNumber(ctx context.Context, number int) (*entities.Chapter, error) {
	query := `SELECT number, english_name, native_name, verse_count FROM chapters WHERE number = $1`

	var ch entities.Chapter
	err := r.db.QueryRow(ctx, query, number).Scan(
		&ch.Number,
		&ch.EnglishName,
		&ch.NativeName,
		&ch.VerseCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChapterNotFound
		}
		return nil, fmt.Errorf("get chapter: %w", err)
	}

	return &ch, nil
}
