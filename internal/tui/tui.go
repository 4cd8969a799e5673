package tui

import (
	"context"

	"usertable/internal/rows"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the user table for st until the user quits or ctx is canceled.
func Run(ctx context.Context, st *rows.Store, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(st, opts)
	defer m.unsubscribe()

	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
