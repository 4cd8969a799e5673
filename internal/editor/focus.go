package editor

import "usertable/internal/model"

// Focus is the focused control on the form.
type Focus int

const (
	FocusName Focus = iota
	FocusEmail
	FocusRole
	FocusMobile
	FocusSave
	FocusClose
)

// FieldFocus maps a field to its control.
func FieldFocus(f model.Field) Focus {
	switch f {
	case model.FieldEmail:
		return FocusEmail
	case model.FieldRole:
		return FocusRole
	case model.FieldMobile:
		return FocusMobile
	default:
		return FocusName
	}
}

// Field returns the field behind a field control.
func (f Focus) Field() (model.Field, bool) {
	switch f {
	case FocusName:
		return model.FieldName, true
	case FocusEmail:
		return model.FieldEmail, true
	case FocusRole:
		return model.FieldRole, true
	case FocusMobile:
		return model.FieldMobile, true
	default:
		return 0, false
	}
}

// Controls lists the focusable controls in tab order.
func (s *Session) Controls() []Focus {
	out := []Focus{FocusName, FocusEmail, FocusRole, FocusMobile}
	if s.CanSave() {
		out = append(out, FocusSave)
	}
	return append(out, FocusClose)
}

// Advance moves focus as Enter does on a field: to the next field, and from the
// last field to Save (or Close when the form is read-only). On a button it is a
// no-op; pressing Enter there activates the button instead.
func (s *Session) Advance() Focus {
	switch s.focus {
	case FocusName, FocusEmail, FocusRole:
		s.focus++
	case FocusMobile:
		if s.CanSave() {
			s.focus = FocusSave
		} else {
			s.focus = FocusClose
		}
	}
	return s.focus
}

// Cycle moves focus by delta through Controls, wrapping around.
func (s *Session) Cycle(delta int) Focus {
	cs := s.Controls()
	cur := 0
	for i, c := range cs {
		if c == s.focus {
			cur = i
			break
		}
	}
	n := len(cs)
	s.focus = cs[((cur+delta)%n+n)%n]
	return s.focus
}

// SetFocus focuses f if it is a control on this form.
func (s *Session) SetFocus(f Focus) bool {
	for _, c := range s.Controls() {
		if c == f {
			s.focus = f
			return true
		}
	}
	return false
}
