package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	maxModalW = 64
	minModalW = 32
)

// fitLine pads or truncates one (possibly styled) line to exactly width cells.
func fitLine(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(ln) > width {
		if width == 1 {
			ln = xansi.Truncate(ln, 1, "")
		} else {
			ln = xansi.Truncate(ln, width, "…")
		}
	}
	if pad := width - xansi.StringWidth(ln); pad > 0 {
		ln += strings.Repeat(" ", pad)
	}
	return ln
}

// normalizePane makes s exactly width x height so the toast and footer stay at
// the bottom of the screen.
func normalizePane(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if height >= 0 && len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func modalWidth(screenW int) int {
	return max(minModalW, min(maxModalW, screenW-4))
}

// modalBodyWidth is the content width inside the border and padding.
func modalBodyWidth(screenW int) int {
	return modalWidth(screenW) - 4
}

func renderModalBox(screenW int, title, content string) string {
	w := modalWidth(screenW)
	heading := styleTitle().
		Width(w - 4).
		Align(lipgloss.Center).
		Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(w - 2).
		Render(heading + "\n\n" + content)
}

// renderInputLine draws a field value on a one-line background bar of bodyW cells.
func renderInputLine(bodyW int, inputView string, disabled bool) string {
	bodyW = max(bodyW, 10)
	inputView = strings.NewReplacer("\r", " ", "\n", " ").Replace(inputView)

	bg := colorInputBg
	if disabled {
		bg = colorSurfaceBg
	}
	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(bg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Reset so a cut escape sequence cannot bleed into the next line.
		line = xansi.Truncate(line, bodyW, "") + "\x1b[0m"
	}
	return line
}

// renderButtons draws labels side by side; active is highlighted (-1 for none).
func renderButtons(labels []string, active int) string {
	idle := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	hot := idle.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	parts := make([]string, 0, len(labels)*2)
	for i, l := range labels {
		if i > 0 {
			parts = append(parts, " ")
		}
		st := idle
		if i == active {
			st = hot
		}
		parts = append(parts, st.Render(l))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
