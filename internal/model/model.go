package model

import (
	"errors"
	"fmt"
	"strings"
)

// Row is a single user record.
type Row struct {
	ID     int64  `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Role   Role   `json:"role" yaml:"role"`
	Mobile string `json:"mobile" yaml:"mobile"`
}

// SameFields reports whether r and o carry identical field values (ID excluded).
func (r Row) SameFields(o Row) bool {
	return r.Name == o.Name && r.Email == o.Email && r.Role == o.Role && r.Mobile == o.Mobile
}

var ErrNotNumeric = errors.New("mobile number must contain digits only")

// ValidMobile reports whether s is empty or only ASCII decimal digits.
func ValidMobile(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

type Role string

const (
	RoleNone      Role = ""
	RoleAdmin     Role = "Admin"
	RoleUser      Role = "User"
	RoleModerator Role = "Moderator"
)

var ErrUnknownRole = errors.New("unknown role")

// Roles returns the selectable roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleUser, RoleModerator}
}

func (r Role) Valid() bool {
	switch r {
	case RoleNone, RoleAdmin, RoleUser, RoleModerator:
		return true
	default:
		return false
	}
}

// ParseRole matches s case-insensitively against the known roles.
// The empty string parses to RoleNone.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoleNone, nil
	}
	for _, r := range Roles() {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Next returns the role after r in selection order, wrapping around.
// An unselected role advances to the first role.
func (r Role) Next() Role {
	rs := Roles()
	for i, x := range rs {
		if x == r {
			return rs[(i+1)%len(rs)]
		}
	}
	return rs[0]
}

// Prev returns the role before r in selection order, wrapping around.
func (r Role) Prev() Role {
	rs := Roles()
	for i, x := range rs {
		if x == r {
			return rs[(i+len(rs)-1)%len(rs)]
		}
	}
	return rs[len(rs)-1]
}

// Field identifies one editable column of a Row.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldRole
	FieldMobile
)

// Fields returns the editable fields in their logical (navigation) order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldRole, FieldMobile}
}

func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldRole:
		return "Role"
	case FieldMobile:
		return "Mobile Number"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

func (f Field) String() string { return f.Label() }

// Get returns the value of field f.
func (r Row) Get(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldRole:
		return string(r.Role)
	case FieldMobile:
		return r.Mobile
	default:
		return ""
	}
}

// With returns a copy of r with field f set to v. No validation is applied.
func (r Row) With(f Field, v string) Row {
	switch f {
	case FieldName:
		r.Name = v
	case FieldEmail:
		r.Email = v
	case FieldRole:
		r.Role = Role(v)
	case FieldMobile:
		r.Mobile = v
	}
	return r
}
