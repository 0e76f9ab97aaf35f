package entities

// VerseEntry holds the fragments of one ayah in source order.
type VerseEntry struct {
	Number    int
	Fragments []Fragment
}

// ChapterVerseSet is the display-ready content of one chapter view.
// Verses are ordered strictly ascending by Number.
type ChapterVerseSet struct {
	Chapter int
	Verses  []VerseEntry
}

// NewEmptyVerseSet returns a set with no verses for the given chapter.
func NewEmptyVerseSet(chapter int) *ChapterVerseSet {
	return &ChapterVerseSet{Chapter: chapter}
}

// Empty reports whether the set holds no verses.
func (s *ChapterVerseSet) Empty() bool {
	return s == nil || len(s.Verses) == 0
}
