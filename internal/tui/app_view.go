package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	w, bodyH := m.bodySize()

	header := styleTitle().Render("Users") +
		styleMuted().Render(fmt.Sprintf("  %d %s", m.store.Len(), plural(m.store.Len(), "user", "users")))

	var body, footer string
	switch {
	case m.showHelp:
		mdW := w - 4
		if mdW > 80 {
			mdW = 80
		}
		body = renderMarkdown(helpMarkdown, mdW)
		footer = "esc/?: close help"
	case m.form != nil:
		body = lipgloss.Place(w, bodyH, lipgloss.Center, lipgloss.Center, m.form.view(w))
		footer = m.form.session.Mode().Title()
	default:
		body = m.table.view()
		footer = "a: add user   e/enter: edit   v: view   d: delete   ?: help   q: quit"
	}

	return strings.Join([]string{
		header,
		normalizePane(body, w, bodyH),
		m.toast.view(),
		styleMuted().Render(footer),
	}, "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
