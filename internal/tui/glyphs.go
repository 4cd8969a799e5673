package tui

import (
	"os"
	"strings"
	"sync/atomic"
)

// asciiGlyphs switches every glyph to its ASCII fallback for fonts that lack
// the Unicode ones.
var asciiGlyphs atomic.Bool

// applyGlyphPreference reads USERTABLE_TUI_GLYPHS ("unicode" or "ascii"),
// falling back to pref. Unknown values keep the current set.
func applyGlyphPreference(pref string) {
	v := strings.TrimSpace(os.Getenv("USERTABLE_TUI_GLYPHS"))
	if v == "" {
		v = strings.TrimSpace(pref)
	}
	switch strings.ToLower(v) {
	case "", "unicode", "utf8":
		asciiGlyphs.Store(false)
	case "ascii":
		asciiGlyphs.Store(true)
	}
}

func glyph(unicode, ascii string) string {
	if asciiGlyphs.Load() {
		return ascii
	}
	return unicode
}

func glyphSuccess() string     { return glyph("✓", "+") }
func glyphError() string       { return glyph("✗", "!") }
func glyphSelectLeft() string  { return glyph("‹", "<") }
func glyphSelectRight() string { return glyph("›", ">") }
func glyphSep() string         { return glyph("·", "|") }
