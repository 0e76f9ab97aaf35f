package service

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

var ErrDuplicateVerse = errors.New("duplicate verse number")

// AssembleVerses groups a chapter's fragments by verse and orders the verses
// numerically ("2" before "10"). Fragment order inside a verse is kept as is.
//
// Keys that do not parse as "<chapter>:<verse>" or that belong to another
// chapter are returned in skipped. Two keys resolving to the same verse
// (e.g. "2:1" and "2:01") are a data integrity error.
func AssembleVerses(chapter int, store map[string][]entities.Fragment) (set *entities.ChapterVerseSet, skipped []string, err error) {
	verses := make([]entities.VerseEntry, 0, len(store))
	seen := make(map[int]string, len(store))

	for key, fragments := range store {
		c, v, parseErr := entities.ParseFragmentKey(key)
		if parseErr != nil || c != chapter {
			skipped = append(skipped, key)
			continue
		}

		if prev, ok := seen[v]; ok {
			return nil, nil, fmt.Errorf("%w: %q and %q are both %s", ErrDuplicateVerse, prev, key, entities.NewFragmentKey(c, v))
		}
		seen[v] = key

		verses = append(verses, entities.VerseEntry{
			Number:    v,
			Fragments: slices.Clone(fragments),
		})
	}

	slices.SortFunc(verses, func(a, b entities.VerseEntry) int { return a.Number - b.Number })
	slices.Sort(skipped)

	return &entities.ChapterVerseSet{Chapter: chapter, Verses: verses}, skipped, nil
}
