package tui

import (
	"strings"

	"usertable/internal/editor"
	"usertable/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// userForm is the add/edit/view modal. The editor session owns the draft; the
// text inputs only mirror it for cursor handling and rendering.
type userForm struct {
	session *editor.Session
	inputs  [4]textinput.Model // indexed by model.Field; the role slot is unused
}

func newUserForm(s *editor.Session) *userForm {
	f := &userForm{session: s}
	placeholders := [4]string{
		model.FieldName:   "Full name",
		model.FieldEmail:  "name@example.com",
		model.FieldMobile: "Digits only",
	}
	draft := s.Draft()
	for _, fld := range []model.Field{model.FieldName, model.FieldEmail, model.FieldMobile} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[fld]
		// No limit; only the session may reject input.
		ti.CharLimit = 0
		ti.SetValue(draft.Get(fld))
		f.inputs[fld] = ti
	}
	return f
}

// syncFocus focuses the text input under the session's focus and blurs the rest.
// Read-only forms never focus an input, so no cursor is shown.
func (f *userForm) syncFocus() tea.Cmd {
	var cmd tea.Cmd
	for _, fld := range []model.Field{model.FieldName, model.FieldEmail, model.FieldMobile} {
		if f.session.Editable() && editor.FieldFocus(fld) == f.session.Focus() {
			cmd = f.inputs[fld].Focus()
			continue
		}
		f.inputs[fld].Blur()
	}
	return cmd
}

// readOnly reports whether every field is rendered as a disabled control.
func (f *userForm) readOnly() bool {
	return !f.session.Editable()
}

func (f *userForm) title() string {
	t := f.session.Mode().Title()
	if !f.session.Editable() {
		t += " (read-only)"
	}
	return t
}

func (f *userForm) buttons() (labels []string, active int) {
	active = -1
	if f.session.CanSave() {
		if f.session.Focus() == editor.FocusSave {
			active = len(labels)
		}
		labels = append(labels, "Save")
	}
	if f.session.Focus() == editor.FocusClose {
		active = len(labels)
	}
	labels = append(labels, "Close")
	return labels, active
}

func (f *userForm) view(screenW int) string {
	bodyW := modalBodyWidth(screenW)
	focus := f.session.Focus()

	var lines []string
	for _, fld := range model.Fields() {
		label := fld.Label()
		labelStyle := styleMuted()
		if editor.FieldFocus(fld) == focus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
		}
		lines = append(lines, labelStyle.Render(label))

		if fld == model.FieldRole {
			lines = append(lines, f.renderRole(bodyW, focus == editor.FocusRole))
		} else {
			iv := f.inputs[fld].View()
			if f.readOnly() {
				v := f.inputs[fld].Value()
				if v == "" {
					v = "-"
				}
				iv = styleMuted().Render(v)
			}
			lines = append(lines, renderInputLine(bodyW, iv, f.readOnly()))
		}
		lines = append(lines, "")
	}

	labels, active := f.buttons()
	lines = append(lines, renderButtons(labels, active), "")

	help := "enter: next   tab: focus   esc: close"
	if f.session.Editable() {
		help = "enter: next   tab: focus   " + glyphSelectLeft() + "/" + glyphSelectRight() + ": role   ctrl+s: save   esc: close"
	}
	lines = append(lines, styleMuted().Width(bodyW).Render(help))

	return renderModalBox(screenW, f.title(), strings.Join(lines, "\n"))
}

// renderRole draws the role selection control.
func (f *userForm) renderRole(bodyW int, focused bool) string {
	role := string(f.session.Draft().Role)
	if role == "" {
		role = "(choose)"
	}
	if f.readOnly() {
		return renderInputLine(bodyW, styleMuted().Render(role), true)
	}
	st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	if focused {
		st = lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Bold(true)
	}
	return renderInputLine(bodyW, glyphSelectLeft()+" "+st.Render(role)+" "+glyphSelectRight(), false)
}
