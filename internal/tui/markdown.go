package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style + wrap width. WithAutoStyle can block on
	// terminal background queries, so a fixed style is picked from lipgloss.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func markdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

const helpMarkdown = `
# Keys

## Table

| Key | Action |
| --- | --- |
| a | Add user |
| e, enter | Edit selected user |
| v | View selected user |
| d, delete | Delete selected user |
| up/down, j/k | Move selection |
| ? | Toggle this help |
| q, ctrl+c | Quit |

## Form

| Key | Action |
| --- | --- |
| enter | Next field; on the last field jump to Save (Close when viewing) |
| tab, shift+tab | Cycle focus |
| left/right, space | Choose role |
| ctrl+s | Save |
| esc | Close without saving |

The mobile number accepts digits only.
`
