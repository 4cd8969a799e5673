package tui

import (
	"time"

	"usertable/internal/notify"
	"usertable/internal/rows"

	"go.uber.org/zap"
)

type Options struct {
	Logger *zap.Logger
	// Sink additionally receives every notification shown as a toast.
	Sink notify.Sink

	// Theme and Glyphs are config-file preferences; the USERTABLE_TUI_* env vars win.
	Theme  string
	Glyphs string

	// Now stamps provisional ids on new drafts. Defaults to time.Now.
	Now func() time.Time
}

type appModel struct {
	store *rows.Store
	log   *zap.Logger
	sink  notify.Sink
	now   func() time.Time

	width  int
	height int

	table *tableView
	toast *toaster
	// form is the open add/edit/view modal; nil when closed.
	form     *userForm
	showHelp bool

	unsubscribe func()
}

func newAppModel(st *rows.Store, opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := appModel{
		store: st,
		log:   log,
		now:   now,
		table: newTableView(),
		toast: &toaster{},
	}
	m.sink = notify.Logged(notify.Tee(m.toast, opts.Sink), log)

	m.table.setRows(st.Rows())
	m.unsubscribe = st.Subscribe(m.table.setRows)
	return m
}

func (m *appModel) resize() {
	// header + toast + footer
	bodyH := m.height - 3
	// table header + its border + empty-state hint
	m.table.setSize(m.width, bodyH-3)
}

func (m appModel) bodySize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = 30
	}
	return w, h - 3
}
