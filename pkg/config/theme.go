package config

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme represents configurable colors for the editor view.
type Theme struct {
	UIBackground tcell.Color
	UIForeground tcell.Color

	// Status bar and suggestion line
	StatusBackground tcell.Color
	StatusForeground tcell.Color
	MiniBackground   tcell.Color
	MiniForeground   tcell.Color

	CursorText tcell.Color
	CursorBG   tcell.Color

	TextDefault tcell.Color

	// Underline color for misspelled words
	Misspelled tcell.Color
	// Foreground for text tagged no-spell-check
	NoSpellCheck tcell.Color

	HighlightSearchBG tcell.Color
	HighlightSearchFG tcell.Color
}

// DefaultTheme returns the built-in light theme.
func DefaultTheme() Theme {
	return Theme{
		UIBackground: tcell.ColorBlack,
		UIForeground: tcell.ColorWhite,

		StatusBackground: tcell.ColorWhite,
		StatusForeground: tcell.ColorBlack,
		MiniBackground:   tcell.ColorWhite,
		MiniForeground:   tcell.ColorBlack,

		CursorText: tcell.ColorBlack,
		CursorBG:   tcell.ColorBlue,

		TextDefault:  tcell.ColorWhite,
		Misspelled:   tcell.ColorRed,
		NoSpellCheck: tcell.ColorGray,

		HighlightSearchBG: tcell.ColorYellow,
		HighlightSearchFG: tcell.ColorBlack,
	}
}

// TerminalTheme follows the terminal's default foreground and background
// and uses palette entries for everything else.
func TerminalTheme() Theme {
	return Theme{
		UIBackground: tcell.ColorDefault,
		UIForeground: tcell.ColorDefault,

		StatusBackground: tcell.ColorGray,
		StatusForeground: tcell.ColorDefault,
		MiniBackground:   tcell.ColorGray,
		MiniForeground:   tcell.ColorDefault,

		CursorText: tcell.ColorDefault,
		CursorBG:   tcell.ColorBlue,

		TextDefault:  tcell.ColorDefault,
		Misspelled:   tcell.ColorRed,
		NoSpellCheck: tcell.ColorGray,

		HighlightSearchBG: tcell.ColorYellow,
		HighlightSearchFG: tcell.ColorDefault,
	}
}

// BuiltinThemes exposes the presets by name.
var BuiltinThemes = map[string]Theme{
	"default":  DefaultTheme(),
	"light":    DefaultTheme(),
	"terminal": TerminalTheme(),
	"dark": {
		UIBackground: tcell.ColorBlack,
		UIForeground: tcell.ColorWhite,

		StatusBackground: tcell.ColorGray,
		StatusForeground: tcell.ColorWhite,
		MiniBackground:   tcell.ColorGray,
		MiniForeground:   tcell.ColorWhite,

		CursorText: tcell.ColorBlack,
		CursorBG:   tcell.ColorLightBlue,

		TextDefault:  tcell.ColorWhite,
		Misspelled:   tcell.ColorOrangeRed,
		NoSpellCheck: tcell.ColorSilver,

		HighlightSearchBG: tcell.ColorDarkOliveGreen,
		HighlightSearchFG: tcell.ColorWhite,
	},
}

// ThemeFor resolves the configured theme and applies the misspelled color.
func (c *Config) ThemeFor() Theme {
	t, ok := BuiltinThemes[c.Theme]
	if !ok {
		t = DefaultTheme()
	}
	if c.Misspelled != tcell.ColorDefault {
		t.Misspelled = c.Misspelled
	}
	return t
}

// ParseColor returns a tcell.Color from a name or hex like "#aabbcc".
// If parsing fails, it returns the provided fallback.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
