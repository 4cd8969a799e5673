package tui

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Every color has a light and a dark variant; lipgloss picks one from the
// detected background.
func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted     lipgloss.TerminalColor = adaptive("240", "243")
	colorSurfaceFg lipgloss.TerminalColor = adaptive("235", "252")
	colorSurfaceBg lipgloss.TerminalColor = adaptive("255", "235")

	colorSelectedBg lipgloss.TerminalColor = adaptive("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = adaptive("235", "255")

	colorControlBg lipgloss.TerminalColor = adaptive("252", "237")
	colorInputBg   lipgloss.TerminalColor = adaptive("254", "234")

	colorAccent   lipgloss.TerminalColor = adaptive("27", "62")
	colorAccentFg lipgloss.TerminalColor = adaptive("255", "235")
	colorBorder   lipgloss.TerminalColor = adaptive("250", "243")

	colorSuccessFg lipgloss.TerminalColor = adaptive("28", "78")
	colorErrorFg   lipgloss.TerminalColor = adaptive("160", "203")
)

// styleMuted is faint on dark backgrounds only; faint grey on white is unreadable.
func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorMuted)
	if lipgloss.HasDarkBackground() {
		st = st.Faint(true)
	}
	return st
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
}

// applyColorProfilePreference picks the lipgloss color profile. NO_COLOR turns
// color off; otherwise COLORTERM/TERM may upgrade what termenv detected.
func applyColorProfilePreference() {
	lipgloss.SetColorProfile(colorProfile(termenv.ColorProfile(), os.Getenv))
}

func colorProfile(detected termenv.Profile, getenv func(string) string) termenv.Profile {
	if strings.TrimSpace(getenv("NO_COLOR")) != "" {
		return termenv.Ascii
	}
	if detected == termenv.Ascii {
		return detected
	}
	colorterm := strings.ToLower(getenv("COLORTERM"))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		return termenv.TrueColor
	}
	if detected == termenv.ANSI && strings.Contains(strings.ToLower(getenv("TERM")), "256color") {
		return termenv.ANSI256
	}
	return detected
}

// applyThemePreference tells lipgloss whether the background is dark.
// USERTABLE_TUI_THEME wins over pref (the config file); "auto" or empty falls
// back to COLORFGBG and then the macOS appearance setting.
func applyThemePreference(pref string) {
	if dark, ok := darkBackground(pref, os.Getenv); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}

func darkBackground(pref string, getenv func(string) string) (dark bool, ok bool) {
	choice := strings.TrimSpace(getenv("USERTABLE_TUI_THEME"))
	if choice == "" {
		choice = strings.TrimSpace(pref)
	}
	switch strings.ToLower(choice) {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	if dark, ok := colorFGBGDark(getenv("COLORFGBG")); ok {
		return dark, true
	}
	if runtime.GOOS == "darwin" {
		return macOSHasDarkAppearance()
	}
	return false, false
}

// colorFGBGDark parses "fg;bg" (or "fg;default;bg"); ANSI backgrounds 0-6 are dark.
func colorFGBGDark(v string) (dark bool, ok bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return false, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false, false
	}
	return bg < 7, true
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	// Exits 1 when the key is unset, which means light mode.
	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if ctx.Err() != nil {
		return false, false
	}
	var ee *exec.ExitError
	switch {
	case err == nil:
		return strings.EqualFold(strings.TrimSpace(string(out)), "dark"), true
	case errors.As(err, &ee) && ee.ExitCode() == 1:
		return false, true
	default:
		return false, false
	}
}
