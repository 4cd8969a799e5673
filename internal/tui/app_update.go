package tui

import (
	"errors"
	"fmt"
	"strings"

	"usertable/internal/editor"
	"usertable/internal/model"
	"usertable/internal/notify"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, next.toast.expireCmd())
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case toastDoneMsg:
		m.toast.expire(msg.seq)
		return m, nil

	case tea.KeyMsg:
		// While the form is open every key goes to it, so typing "q" or "d" edits
		// text instead of triggering table actions.
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.showHelp {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "?", "q":
				m.showHelp = false
			}
			return m, nil
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m appModel) updateTable(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "a":
		return m.openForm(editor.OpenAdd(m.now()))
	case "e", "enter":
		if r, ok := m.table.selected(); ok {
			return m.openForm(editor.OpenEdit(r))
		}
		return m, nil
	case "v":
		if r, ok := m.table.selected(); ok {
			return m.openForm(editor.OpenView(r))
		}
		return m, nil
	case "d", "delete":
		return m.deleteSelected()
	}
	return m, m.table.update(msg)
}

func (m appModel) openForm(s *editor.Session) (appModel, tea.Cmd) {
	m.form = newUserForm(s)
	m.log.Debug("form opened", zap.Stringer("mode", s.Mode()), zap.Int64("id", s.Draft().ID))
	return m, m.form.syncFocus()
}

func (m *appModel) closeForm() {
	if m.form != nil {
		m.log.Debug("form closed", zap.Stringer("mode", m.form.session.Mode()))
	}
	m.form = nil
}

func (m appModel) deleteSelected() (appModel, tea.Cmd) {
	r, ok := m.table.selected()
	if !ok {
		return m, nil
	}
	if err := m.store.Delete(r.ID); err != nil {
		m.sink.Notify(notify.Error, "Delete failed: "+err.Error())
		return m, nil
	}
	m.sink.Notify(notify.Success, userLabel(r)+" deleted")
	return m, nil
}

func (m appModel) updateForm(msg tea.KeyMsg) (appModel, tea.Cmd) {
	f := m.form
	s := f.session

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+g":
		m.closeForm()
		return m, nil
	case "ctrl+s":
		if s.CanSave() {
			return m.saveForm()
		}
		return m, nil
	case "tab":
		s.Cycle(1)
		return m, f.syncFocus()
	case "shift+tab":
		s.Cycle(-1)
		return m, f.syncFocus()
	case "enter":
		switch s.Focus() {
		case editor.FocusSave:
			return m.saveForm()
		case editor.FocusClose:
			m.closeForm()
			return m, nil
		}
		s.Advance()
		return m, f.syncFocus()
	}

	fld, ok := s.Focus().Field()
	if !ok || !s.Editable() {
		return m, nil
	}
	if fld == model.FieldRole {
		return m.updateRole(msg)
	}
	return m.updateTextField(fld, msg)
}

func (m appModel) updateRole(msg tea.KeyMsg) (appModel, tea.Cmd) {
	s := m.form.session
	cur := s.Draft().Role
	var next model.Role
	switch msg.String() {
	case "right", "l", " ", "space":
		next = cur.Next()
	case "left", "h":
		next = cur.Prev()
	default:
		return m, nil
	}
	if err := s.Set(model.FieldRole, string(next)); err != nil {
		m.rejectChange(model.FieldRole, err)
	}
	return m, nil
}

// updateTextField applies msg to a copy of the input and keeps the result only
// if the draft accepts the new value.
func (m appModel) updateTextField(fld model.Field, msg tea.KeyMsg) (appModel, tea.Cmd) {
	f := m.form
	before := f.inputs[fld].Value()
	next, cmd := f.inputs[fld].Update(msg)
	if after := next.Value(); after != before {
		if err := f.session.Set(fld, after); err != nil {
			m.rejectChange(fld, err)
			return m, nil
		}
	}
	f.inputs[fld] = next
	return m, cmd
}

func (m appModel) rejectChange(fld model.Field, err error) {
	m.log.Debug("field change rejected", zap.Stringer("field", fld), zap.Error(err))
	m.sink.Notify(notify.Error, validationMessage(fld, err))
}

func (m appModel) saveForm() (appModel, tea.Cmd) {
	s := m.form.session
	saved, err := s.Save(m.store)
	if err != nil {
		m.sink.Notify(notify.Error, "Save failed: "+err.Error())
		return m, nil
	}
	mode := s.Mode()
	m.closeForm()
	m.table.selectID(saved.ID)

	verb := "updated"
	if mode == editor.ModeAdd {
		verb = "added"
	}
	m.sink.Notify(notify.Success, userLabel(saved)+" "+verb)
	return m, nil
}

func validationMessage(fld model.Field, err error) string {
	switch {
	case errors.Is(err, editor.ErrNotNumeric):
		return fld.Label() + ": digits only"
	case errors.Is(err, editor.ErrUnknownRole):
		return "Role must be one of " + rolesList()
	default:
		return fld.Label() + ": " + err.Error()
	}
}

func rolesList() string {
	rs := model.Roles()
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return strings.Join(out, ", ")
}

func userLabel(r model.Row) string {
	if strings.TrimSpace(r.Name) == "" {
		return "User"
	}
	return fmt.Sprintf("User %q", r.Name)
}
