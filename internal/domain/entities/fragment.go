package entities

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedKey is returned when a fragment key is not of the form "<chapter>:<verse>".
var ErrMalformedKey = errors.New("malformed fragment key")

const keySeparator = ":"

// Fragment is a sub-span of a verse paired with its translation.
type Fragment struct {
	OriginalText   string `json:"qpc_hafs" validate:"required"`   // original Arabic script (QPC Hafs)
	TranslatedText string `json:"en_khattab" validate:"required"` // English translation (The Clear Quran)
}

// NewFragmentKey builds the "<chapter>:<verse>" key used by the fragment asset.
func NewFragmentKey(chapter, verse int) string {
	return strconv.Itoa(chapter) + keySeparator + strconv.Itoa(verse)
}

// ChapterPrefix returns the key prefix shared by all verses of a chapter.
// The trailing separator keeps chapter 1 from matching "10:...".
func ChapterPrefix(chapter int) string {
	return strconv.Itoa(chapter) + keySeparator
}

// ParseFragmentKey splits a key into its chapter and verse numbers.
func ParseFragmentKey(key string) (chapter, verse int, err error) {
	c, v, ok := strings.Cut(key, keySeparator)
	if !ok {
		return 0, 0, ErrMalformedKey
	}

	chapter, err = strconv.Atoi(c)
	if err != nil || chapter < 1 {
		return 0, 0, ErrMalformedKey
	}

	verse, err = strconv.Atoi(v)
	if err != nil || verse < 1 {
		return 0, 0, ErrMalformedKey
	}

	return chapter, verse, nil
}
