package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"usertable/internal/editor"
	"usertable/internal/model"
	"usertable/internal/notify"
	"usertable/internal/rows"

	tea "github.com/charmbracelet/bubbletea"
)

var alice = model.Row{ID: 1, Name: "Alice", Email: "a@x.com", Role: model.RoleAdmin, Mobile: "5551234"}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func press(m appModel, msgs ...tea.Msg) appModel {
	for _, msg := range msgs {
		mAny, _ := m.Update(msg)
		m = mAny.(appModel)
	}
	return m
}

func newSeededModel(t *testing.T, seed ...model.Row) (appModel, *rows.Store, *notify.Recorder) {
	t.Helper()
	return newSeededModelOn(t, rows.NewMemoryStore(), seed...)
}

func newSeededModelOn(t *testing.T, st *rows.Store, seed ...model.Row) (appModel, *rows.Store, *notify.Recorder) {
	t.Helper()
	if err := st.Seed(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec := &notify.Recorder{}
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newAppModel(st, Options{Sink: rec, Now: func() time.Time { return now }})
	m = press(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, st, rec
}

func assertTableMatchesStore(t *testing.T, m appModel, st *rows.Store) {
	t.Helper()
	got, want := m.table.rows, st.Rows()
	if len(got) != len(want) {
		t.Fatalf("table has %d rows, store has %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: table %+v, store %+v", i, got[i], want[i])
		}
	}
	if n := len(m.table.t.Rows()); n != len(want) {
		t.Fatalf("rendered %d table rows, want %d", n, len(want))
	}
}

func TestAddUserScenario(t *testing.T) {
	m, st, rec := newSeededModel(t, alice)

	m = press(m, keyRunes("a"))
	if m.form == nil || m.form.session.Mode() != editor.ModeAdd {
		t.Fatalf("expected add form to open")
	}
	if got := m.form.session.Draft().ID; got != time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).UnixNano() {
		t.Fatalf("expected timestamp placeholder id, got %d", got)
	}

	m = press(m, keyRunes("Bob"), keyEnter, keyEnter)
	if m.form.session.Focus() != editor.FocusRole {
		t.Fatalf("expected role focus, got %v", m.form.session.Focus())
	}
	// Unselected -> Admin -> User.
	m = press(m, keyRight, keyRight, keyEnter)
	if got := m.form.session.Draft().Role; got != model.RoleUser {
		t.Fatalf("expected role User, got %q", got)
	}

	m = press(m, keyRunes("abc"))
	if got := m.form.session.Draft().Mobile; got != "" {
		t.Fatalf("expected rejected mobile input to leave draft empty, got %q", got)
	}
	if got := m.form.inputs[model.FieldMobile].Value(); got != "" {
		t.Fatalf("expected input to stay empty, got %q", got)
	}
	if rec.Count(notify.Error) != 1 {
		t.Fatalf("expected one validation notification, got %+v", rec.Messages)
	}

	m = press(m, keyRunes("5550000"), keyEnter)
	if m.form.session.Focus() != editor.FocusSave {
		t.Fatalf("expected enter on mobile to focus Save, got %v", m.form.session.Focus())
	}
	m = press(m, keyEnter)
	if m.form != nil {
		t.Fatalf("expected form to close after save")
	}

	got := st.Rows()
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[1].Name != "Bob" || got[1].Role != model.RoleUser || got[1].Mobile != "5550000" {
		t.Fatalf("unexpected new row: %+v", got[1])
	}
	if got[1].ID == alice.ID {
		t.Fatalf("new row must get a unique id")
	}
	if rec.Count(notify.Success) != 1 || rec.Count(notify.Error) != 1 {
		t.Fatalf("expected 1 success + 1 error notification, got %+v", rec.Messages)
	}
	assertTableMatchesStore(t, m, st)
	if sel, ok := m.table.selected(); !ok || sel.ID != got[1].ID {
		t.Fatalf("expected the new row to be selected, got %+v", sel)
	}
}

func TestSecondAddGetsDistinctID(t *testing.T) {
	m, st, _ := newSeededModel(t, alice)
	m = press(m, keyRunes("a"), keyRunes("Bob"), keyCtrlS)
	m = press(m, keyRunes("a"), keyRunes("Carol"), keyCtrlS)

	got := st.Rows()
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if got[1].ID == got[2].ID {
		t.Fatalf("expected distinct ids, got %d twice", got[1].ID)
	}
	assertTableMatchesStore(t, m, st)
}

func TestDeleteScenario(t *testing.T) {
	m, st, rec := newSeededModel(t, alice)

	m = press(m, keyRunes("d"))
	if len(st.Rows()) != 0 {
		t.Fatalf("expected empty store, got %+v", st.Rows())
	}
	if rec.Count(notify.Success) != 1 || len(rec.Messages) != 1 {
		t.Fatalf("expected exactly one success notification, got %+v", rec.Messages)
	}
	assertTableMatchesStore(t, m, st)

	// Nothing selected: delete is a no-op.
	m = press(m, keyRunes("d"))
	if len(rec.Messages) != 1 {
		t.Fatalf("expected no extra notification, got %+v", rec.Messages)
	}
	if !strings.Contains(m.View(), "No users yet") {
		t.Fatalf("expected empty-state hint")
	}
}

func TestEditRoundTripWithoutChanges(t *testing.T) {
	m, st, rec := newSeededModel(t, alice)

	m = press(m, keyEnter)
	if m.form == nil || m.form.session.Mode() != editor.ModeEdit {
		t.Fatalf("expected enter to open edit form")
	}
	m = press(m, keyCtrlS)
	if m.form != nil {
		t.Fatalf("expected form to close")
	}
	if got := st.Rows(); len(got) != 1 || got[0] != alice {
		t.Fatalf("expected stored row unchanged, got %+v", got)
	}
	if rec.Count(notify.Success) != 1 {
		t.Fatalf("expected one success notification, got %+v", rec.Messages)
	}
}

func TestEditChangesNameAndKeepsID(t *testing.T) {
	m, st, _ := newSeededModel(t, alice, model.Row{ID: 2, Name: "Bob"})

	m = press(m, keyRunes("e"), tea.KeyMsg{Type: tea.KeyBackspace}, keyRunes("a"), keyCtrlS)

	got := st.Rows()
	if got[0].ID != 1 || got[0].Name != "Alica" {
		t.Fatalf("unexpected edited row: %+v", got[0])
	}
	if got[1].Name != "Bob" {
		t.Fatalf("other rows must be untouched: %+v", got[1])
	}
	assertTableMatchesStore(t, m, st)
}

func TestEscDiscardsDraft(t *testing.T) {
	m, st, rec := newSeededModel(t, alice)

	m = press(m, keyRunes("e"), keyRunes("XYZ"), keyEsc)
	if m.form != nil {
		t.Fatalf("expected form closed")
	}
	if got := st.Rows()[0]; got != alice {
		t.Fatalf("expected discarded draft, store has %+v", got)
	}
	if len(rec.Messages) != 0 {
		t.Fatalf("close must not notify, got %+v", rec.Messages)
	}

	// Reopening re-derives the draft from the stored row.
	m = press(m, keyRunes("e"))
	if got := m.form.inputs[model.FieldName].Value(); got != "Alice" {
		t.Fatalf("expected fresh draft, got %q", got)
	}
}

func TestViewModeIsReadOnly(t *testing.T) {
	m, st, rec := newSeededModel(t, alice)

	m = press(m, keyRunes("v"))
	if m.form == nil || m.form.session.Mode() != editor.ModeView {
		t.Fatalf("expected view form to open")
	}
	if !m.form.readOnly() {
		t.Fatalf("expected fields disabled")
	}
	for _, fld := range []model.Field{model.FieldName, model.FieldEmail, model.FieldMobile} {
		if m.form.inputs[fld].Focused() {
			t.Fatalf("expected %s input blurred in view mode", fld)
		}
	}
	out := m.View()
	if strings.Contains(out, "Save") {
		t.Fatalf("view mode must not render a Save control:\n%s", out)
	}
	if !strings.Contains(out, "read-only") {
		t.Fatalf("expected read-only marker:\n%s", out)
	}

	m = press(m, keyRunes("x"), keyRight, keyCtrlS)
	if m.form.session.Draft() != alice || len(rec.Messages) != 0 || st.Rows()[0] != alice {
		t.Fatalf("view mode must ignore edits and saves")
	}

	m = press(m, keyEnter, keyEnter, keyEnter, keyEnter)
	if m.form.session.Focus() != editor.FocusClose {
		t.Fatalf("expected enter on last field to focus Close, got %v", m.form.session.Focus())
	}
	m = press(m, keyEnter)
	if m.form != nil {
		t.Fatalf("expected Close to close the form")
	}
}

func TestEditFormRendersSave(t *testing.T) {
	m, _, _ := newSeededModel(t, alice)
	m = press(m, keyRunes("e"))
	if !strings.Contains(m.View(), "Save") {
		t.Fatalf("expected Save control in edit mode")
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m, _, _ := newSeededModel(t, alice)
	m = press(m, keyRunes("e"), keyShiftTab)
	if m.form.session.Focus() != editor.FocusClose {
		t.Fatalf("expected shift+tab to wrap to Close, got %v", m.form.session.Focus())
	}
	m = press(m, keyTab, keyTab)
	if m.form.session.Focus() != editor.FocusEmail {
		t.Fatalf("expected Email focus, got %v", m.form.session.Focus())
	}
	if !m.form.inputs[model.FieldEmail].Focused() || m.form.inputs[model.FieldName].Focused() {
		t.Fatalf("expected only the email input focused")
	}
}

func TestFormCapturesTableKeys(t *testing.T) {
	m, st, _ := newSeededModel(t, alice)
	m = press(m, keyRunes("a"), keyRunes("q"), keyRunes("d"))
	if m.form == nil {
		t.Fatalf("typing in the form must not trigger table actions")
	}
	if got := m.form.session.Draft().Name; got != "qd" {
		t.Fatalf("expected typed name, got %q", got)
	}
	if len(st.Rows()) != 1 {
		t.Fatalf("store must be untouched")
	}
}

// forEachBackend runs fn with a fresh store on every row backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, st *rows.Store)) {
	t.Helper()
	for _, name := range rows.BackendNames() {
		t.Run(name, func(t *testing.T) {
			b, err := rows.OpenBackend(context.Background(), name)
			if err != nil {
				t.Fatalf("open %s backend: %v", name, err)
			}
			st := rows.New(b)
			t.Cleanup(func() { _ = st.Close() })
			fn(t, st)
		})
	}
}

func TestTableFollowsStoreMutations(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st *rows.Store) {
		m, st, _ := newSeededModelOn(t, st, alice)
		assertTableMatchesStore(t, m, st)

		bob, err := st.Add(model.Row{Name: "Bob"})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		assertTableMatchesStore(t, m, st)
		if err := st.Edit(bob.ID, model.Row{Name: "Robert"}); err != nil {
			t.Fatalf("edit: %v", err)
		}
		assertTableMatchesStore(t, m, st)
		if err := st.Delete(alice.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		assertTableMatchesStore(t, m, st)

		out := m.View()
		if strings.Contains(out, "Alice") || !strings.Contains(out, "Robert") {
			t.Fatalf("view out of sync with store:\n%s", out)
		}
	})
}

func TestFormMutationsReachTableOnEveryBackend(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st *rows.Store) {
		m, st, _ := newSeededModelOn(t, st, alice)

		m = press(m, keyRunes("a"), keyRunes("Bob"), keyCtrlS)
		assertTableMatchesStore(t, m, st)
		m = press(m, keyRunes("e"), keyRunes("by"), keyCtrlS)
		assertTableMatchesStore(t, m, st)
		m = press(m, keyRunes("d"))
		assertTableMatchesStore(t, m, st)
		if st.Len() != 1 {
			t.Fatalf("expected one row left, got %+v", st.Rows())
		}
	})
}

func TestLongMobileNumberIsAccepted(t *testing.T) {
	m, _, rec := newSeededModel(t, alice)
	digits := strings.Repeat("9", 32)

	m = press(m, keyRunes("a"), keyTab, keyTab, keyTab, keyRunes(digits))
	if got := m.form.session.Draft().Mobile; got != digits {
		t.Fatalf("expected all digits kept, got %q", got)
	}
	if got := m.form.inputs[model.FieldMobile].Value(); got != digits {
		t.Fatalf("expected input to show all digits, got %q", got)
	}
	if len(rec.Messages) != 0 {
		t.Fatalf("digits must not notify, got %+v", rec.Messages)
	}
}

func TestViewRendersRowsInStoreOrder(t *testing.T) {
	m, _, _ := newSeededModel(t, model.Row{ID: 9, Name: "Zed"}, alice)
	out := m.View()
	zi, ai := strings.Index(out, "Zed"), strings.Index(out, "Alice")
	if zi < 0 || ai < 0 || zi > ai {
		t.Fatalf("expected Zed before Alice:\n%s", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 30 {
		t.Fatalf("expected view to fill 30 lines, got %d", len(lines))
	}
}

func TestToastExpiresOnlyForLatestMessage(t *testing.T) {
	m, _, _ := newSeededModel(t, alice)

	m = press(m, keyRunes("a"), keyRunes("x"), keyEnter, keyEnter, keyEnter)
	mAny, cmd := m.Update(keyRunes("z"))
	m = mAny.(appModel)
	if cmd == nil {
		t.Fatalf("expected an expiry tick for the validation toast")
	}
	if m.toast.text == "" {
		t.Fatalf("expected toast text")
	}
	first := m.toast.seq

	m = press(m, keyRunes("y"))
	m = press(m, toastDoneMsg{seq: first})
	if m.toast.text == "" {
		t.Fatalf("stale expiry must not clear a newer toast")
	}
	m = press(m, toastDoneMsg{seq: m.toast.seq})
	if m.toast.text != "" {
		t.Fatalf("expected toast cleared, got %q", m.toast.text)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newSeededModel(t, alice)
	m = press(m, keyRunes("?"))
	if !m.showHelp {
		t.Fatalf("expected help")
	}
	m = press(m, keyRunes("d"))
	if !m.showHelp || m.store.Len() != 1 {
		t.Fatalf("help overlay must swallow table keys")
	}
	m = press(m, keyEsc)
	if m.showHelp {
		t.Fatalf("expected help closed")
	}
}

type failingBackend struct{ rows.Memory }

func (failingBackend) Insert(model.Row) (model.Row, error) {
	return model.Row{}, errors.New("insert refused")
}

func TestSaveFailureKeepsFormOpen(t *testing.T) {
	st := rows.New(&failingBackend{})
	rec := &notify.Recorder{}
	m := newAppModel(st, Options{Sink: rec})

	m = press(m, keyRunes("a"), keyRunes("Bob"), keyCtrlS)
	if m.form == nil {
		t.Fatalf("expected form to stay open after a failed save")
	}
	if rec.Count(notify.Error) != 1 || rec.Count(notify.Success) != 0 {
		t.Fatalf("expected one error notification, got %+v", rec.Messages)
	}
	if !strings.Contains(rec.Messages[0].Text, "insert refused") {
		t.Fatalf("expected backend error in toast, got %q", rec.Messages[0].Text)
	}
}
