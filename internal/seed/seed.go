// Package seed reads the initial row collection from a JSON or YAML file.
// Nothing is ever written back.
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"usertable/internal/model"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension; unknown extensions are JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func Load(path string) ([]model.Row, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rs, err := Parse(b, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return rs, nil
}

// Parse decodes a list of rows, normalizes role spelling and rejects
// mobile numbers the editor could not accept.
func Parse(b []byte, f Format) ([]model.Row, error) {
	var rs []model.Row
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(b, &rs); err != nil {
			return nil, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&rs); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown seed format: %s", f)
	}
	for i := range rs {
		role, err := model.ParseRole(string(rs[i].Role))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rs[i].ID, err)
		}
		rs[i].Role = role
		if !model.ValidMobile(rs[i].Mobile) {
			return nil, fmt.Errorf("row %d: %w: %q", rs[i].ID, model.ErrNotNumeric, rs[i].Mobile)
		}
	}
	return rs, nil
}

// Sample is the demo collection used by --sample.
func Sample() []model.Row {
	return []model.Row{
		{ID: 1, Name: "Alice", Email: "a@x.com", Role: model.RoleAdmin, Mobile: "5551234"},
		{ID: 2, Name: "Bob", Email: "bob@x.com", Role: model.RoleUser, Mobile: "5550000"},
		{ID: 3, Name: "Carol", Email: "carol@x.com", Role: model.RoleModerator, Mobile: ""},
	}
}
