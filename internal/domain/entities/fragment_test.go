package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentKey(t *testing.T) {
	assert.Equal(t, "2:255", NewFragmentKey(2, 255))
	assert.Equal(t, "1:", ChapterPrefix(1))

	t.Run("Should parse valid keys", func(t *testing.T) {
		c, v, err := ParseFragmentKey("114:6")
		require.NoError(t, err)
		assert.Equal(t, 114, c)
		assert.Equal(t, 6, v)
	})

	t.Run("Should reject malformed keys", func(t *testing.T) {
		for _, key := range []string{"", "1", "1:", ":1", "a:1", "1:b", "0:1", "1:0", "1:-2", "1:2:3"} {
			_, _, err := ParseFragmentKey(key)
			assert.ErrorIs(t, err, ErrMalformedKey, key)
		}
	})
}

func TestTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme(" Dark "))
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeLight, ParseTheme(""))
	assert.NotEqual(t, ThemeLight.Palette(), ThemeDark.Palette())
}

func TestChapterVerseSet_Empty(t *testing.T) {
	var nilSet *ChapterVerseSet
	assert.True(t, nilSet.Empty())
	assert.True(t, NewEmptyVerseSet(3).Empty())
	assert.False(t, (&ChapterVerseSet{Verses: []VerseEntry{{Number: 1}}}).Empty())
	assert.True(t, ValidChapterNumber(114))
	assert.False(t, ValidChapterNumber(0))
}
