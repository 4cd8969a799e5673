package tui

import (
	"time"

	"usertable/internal/notify"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const toastTTL = 3 * time.Second

type toastDoneMsg struct{ seq int }

// toaster is the TUI's notification sink: the latest message is shown in the
// status line until it expires or is replaced.
type toaster struct {
	level notify.Level
	text  string
	seq   int
	// armed is set by Notify and cleared once an expiry tick has been scheduled.
	armed bool
}

func (t *toaster) Notify(level notify.Level, text string) {
	t.level = level
	t.text = text
	t.seq++
	t.armed = true
}

// expireCmd schedules expiry of the current message, once per message.
func (t *toaster) expireCmd() tea.Cmd {
	if !t.armed {
		return nil
	}
	t.armed = false
	seq := t.seq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastDoneMsg{seq: seq} })
}

// expire clears the message if seq is still the latest one.
func (t *toaster) expire(seq int) {
	if seq == t.seq {
		t.text = ""
	}
}

func (t *toaster) view() string {
	if t.text == "" {
		return ""
	}
	if t.level == notify.Error {
		return lipgloss.NewStyle().Foreground(colorErrorFg).Bold(true).Render(glyphError() + " " + t.text)
	}
	return lipgloss.NewStyle().Foreground(colorSuccessFg).Render(glyphSuccess() + " " + t.text)
}
