package entities

import "strings"

// Theme is the light/dark preference used when rendering screens.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a configuration value to a Theme, defaulting to light.
func ParseTheme(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), string(ThemeDark)) {
		return ThemeDark
	}
	return ThemeLight
}

// Palette holds the glyphs a theme renders with.
type Palette struct {
	VerseMarker string // prefix before a verse number
	Divider     string // separator between verses
	Loading     string // loading indicator prefix
}

// Palette returns the glyph set for the theme.
func (t Theme) Palette() Palette {
	if t == ThemeDark {
		return Palette{
			VerseMarker: "🔹",
			Divider:     "▪️▪️▪️",
			Loading:     "🌙",
		}
	}

	return Palette{
		VerseMarker: "🔸",
		Divider:     "───",
		Loading:     "⏳",
	}
}
