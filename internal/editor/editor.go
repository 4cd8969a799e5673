// Package editor implements the add/edit/view form shared by the user table.
//
// A *Session is the open form; a nil *Session means the form is closed, so
// there is no representable "closed but saveable" state.
package editor

import (
	"errors"
	"fmt"
	"time"

	"usertable/internal/model"
)

var (
	ErrNotNumeric      = model.ErrNotNumeric
	ErrUnknownRole     = errors.New("role must be one of Admin, User, Moderator")
	ErrReadOnly        = errors.New("form is read-only")
	ErrSaveUnavailable = errors.New("save is not available in view mode")
)

type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
	ModeView
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	case ModeView:
		return "view"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Title is the heading shown on the form.
func (m Mode) Title() string {
	switch m {
	case ModeAdd:
		return "Add User"
	case ModeEdit:
		return "Edit User"
	default:
		return "View User"
	}
}

// Committer is the part of the row store the form writes to.
type Committer interface {
	Add(r model.Row) (model.Row, error)
	Edit(id int64, r model.Row) error
}

type Session struct {
	mode  Mode
	draft model.Row
	focus Focus
}

// OpenAdd starts a blank draft. Its id is a provisional, timestamp-derived
// placeholder; the store assigns the real id on save.
func OpenAdd(now time.Time) *Session {
	return &Session{mode: ModeAdd, draft: model.Row{ID: now.UnixNano()}, focus: FocusName}
}

func OpenEdit(r model.Row) *Session {
	return &Session{mode: ModeEdit, draft: r, focus: FocusName}
}

func OpenView(r model.Row) *Session {
	return &Session{mode: ModeView, draft: r, focus: FocusName}
}

func (s *Session) Mode() Mode       { return s.mode }
func (s *Session) Draft() model.Row { return s.draft }
func (s *Session) Focus() Focus     { return s.focus }

// Editable reports whether fields accept changes (Add and Edit).
func (s *Session) Editable() bool { return s.mode != ModeView }

// CanSave reports whether the form offers a Save control.
func (s *Session) CanSave() bool { return s.mode != ModeView }

// Set validates v and stores it in the draft. On error the draft is unchanged.
func (s *Session) Set(f model.Field, v string) error {
	if !s.Editable() {
		return ErrReadOnly
	}
	if err := Validate(f, v); err != nil {
		return err
	}
	s.draft = s.draft.With(f, v)
	return nil
}

// Save commits the draft: Add mode inserts it, Edit mode replaces the row with
// the draft's id. The session stays open; callers discard it on success.
func (s *Session) Save(c Committer) (model.Row, error) {
	switch s.mode {
	case ModeAdd:
		return c.Add(s.draft)
	case ModeEdit:
		if err := c.Edit(s.draft.ID, s.draft); err != nil {
			return model.Row{}, err
		}
		return s.draft, nil
	default:
		return model.Row{}, ErrSaveUnavailable
	}
}

// Validate checks a single field value.
func Validate(f model.Field, v string) error {
	switch f {
	case model.FieldMobile:
		if !model.ValidMobile(v) {
			return ErrNotNumeric
		}
	case model.FieldRole:
		if !model.Role(v).Valid() {
			return ErrUnknownRole
		}
	}
	return nil
}
