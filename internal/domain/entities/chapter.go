// Package entities contains domain entities used across the application.
package entities

// TotalChapters is the number of surahs in the Quran.
const TotalChapters = 114

// Chapter represents one surah of the Quran.
// Chapters are loaded once at startup and never mutated.
type Chapter struct {
	Number      int    `json:"number" validate:"min=1,max=114"` // number of the surah (from 1 to 114)
	EnglishName string `json:"englishName" validate:"required"` // transliterated name, e.g. "Al-Faatiha"
	NativeName  string `json:"name" validate:"required"`        // Arabic name of the surah
	VerseCount  int    `json:"numberOfAyahs" validate:"min=1"`  // number of ayahs in the surah
}

// ValidChapterNumber reports whether n is within 1..114.
func ValidChapterNumber(n int) bool {
	return n >= 1 && n <= TotalChapters
}
