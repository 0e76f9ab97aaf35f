package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

func TestCallbackData(t *testing.T) {
	assert.Equal(t, "catalog:2", buildCatalogCallback(2))
	assert.Equal(t, "surah:114:6", buildSurahCallback(114, 6))
	assert.Equal(t, "verses:2:0", buildVersesCallback(2, 0))
	assert.Equal(t, "back", buildBackCallback())

	data := decodeCallback("surah:12:1")
	assert.Equal(t, actionSurah, data.Action)
	n, err := data.intParam(0)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	_, err = data.intParam(2)
	assert.ErrorIs(t, err, errInvalidCallback)

	_, err = decodeCallback("surah:-1").intParam(0)
	assert.ErrorIs(t, err, errInvalidCallback)

	assert.Equal(t, actionBack, decodeCallback("back").Action)
}

func TestBuildVersePages(t *testing.T) {
	palette := entities.ThemeLight.Palette()

	t.Run("Should return no pages for an empty set", func(t *testing.T) {
		assert.Empty(t, buildVersePages(entities.NewEmptyVerseSet(1), palette))
	})

	t.Run("Should fit short chapters on one page", func(t *testing.T) {
		set := &entities.ChapterVerseSet{Chapter: 112, Verses: []entities.VerseEntry{
			{Number: 1, Fragments: []entities.Fragment{{OriginalText: "a", TranslatedText: "b"}}},
			{Number: 2, Fragments: []entities.Fragment{{OriginalText: "c", TranslatedText: "d"}}},
		}}
		pages := buildVersePages(set, palette)
		require.Len(t, pages, 1)
		assert.Contains(t, pages[0], palette.Divider)
	})

	t.Run("Should escape dataset text", func(t *testing.T) {
		set := &entities.ChapterVerseSet{Chapter: 1, Verses: []entities.VerseEntry{
			{Number: 1, Fragments: []entities.Fragment{{OriginalText: "<b>", TranslatedText: "a & b"}}},
		}}
		pages := buildVersePages(set, palette)
		require.Len(t, pages, 1)
		assert.Contains(t, pages[0], "&lt;b&gt;")
		assert.Contains(t, pages[0], "a &amp; b")
	})

	t.Run("Should split oversized verses between fragments", func(t *testing.T) {
		long := strings.Repeat("x", 1000)
		var fragments []entities.Fragment
		for range 6 {
			fragments = append(fragments, entities.Fragment{OriginalText: long, TranslatedText: long})
		}
		set := &entities.ChapterVerseSet{Chapter: 2, Verses: []entities.VerseEntry{
			{Number: 1, Fragments: []entities.Fragment{{OriginalText: "a", TranslatedText: "b"}}},
			{Number: 2, Fragments: fragments},
		}}

		pages := buildVersePages(set, palette)
		require.Greater(t, len(pages), 1)
		for _, p := range pages {
			assert.LessOrEqual(t, utf8.RuneCountInString(p), maxPageRunes)
		}
	})
}

func TestBuildVersePages_OversizedFragment(t *testing.T) {
	palette := entities.ThemeDark.Palette()
	ch := entities.Chapter{Number: 2, EnglishName: "Al-Baqara", NativeName: "البقرة", VerseCount: 286}

	t.Run("Should cut a single long fragment across pages", func(t *testing.T) {
		set := &entities.ChapterVerseSet{Chapter: 2, Verses: []entities.VerseEntry{
			{Number: 282, Fragments: []entities.Fragment{{
				OriginalText:   strings.Repeat("ب", 3000),
				TranslatedText: strings.Repeat("y", 1500),
			}}},
		}}

		pages := buildVersePages(set, palette)
		require.Greater(t, len(pages), 1)

		var joined strings.Builder
		for i, p := range pages {
			assert.LessOrEqual(t, utf8.RuneCountInString(p), maxPageRunes)
			assert.LessOrEqual(t, utf8.RuneCountInString(renderVersePage(ch, pages, i)), 4096)
			joined.WriteString(p)
		}
		assert.Equal(t, 3000, strings.Count(joined.String(), "ب"))
		assert.Equal(t, 1500, strings.Count(joined.String(), "y"))
		assert.Contains(t, pages[0], "<b>282</b>")
	})

	t.Run("Should not split escaped entities", func(t *testing.T) {
		set := &entities.ChapterVerseSet{Chapter: 2, Verses: []entities.VerseEntry{
			{Number: 1, Fragments: []entities.Fragment{{
				OriginalText:   strings.Repeat("&", 2000),
				TranslatedText: "b",
			}}},
		}}

		pages := buildVersePages(set, palette)
		require.Greater(t, len(pages), 1)

		total := 0
		for _, p := range pages {
			assert.LessOrEqual(t, utf8.RuneCountInString(p), maxPageRunes)
			assert.Equal(t, strings.Count(p, "&"), strings.Count(p, "&amp;"))
			total += strings.Count(p, "&amp;")
		}
		assert.Equal(t, 2000, total)
	})
}

func TestRenderVersePage(t *testing.T) {
	ch := entities.Chapter{Number: 1, EnglishName: "Al-Faatiha", NativeName: "الفاتحة", VerseCount: 7}

	text := renderVersePage(ch, nil, 0)
	assert.Contains(t, text, "<b>1. Al-Faatiha</b>")
	assert.Contains(t, text, "7 verses")
	assert.Contains(t, text, msgNoVerses)

	text = renderVersePage(ch, []string{"one", "two"}, 1)
	assert.Contains(t, text, "Page 2 of 2")
	assert.True(t, strings.HasSuffix(text, "two"))
}
