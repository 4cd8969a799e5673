package rows

import (
	"fmt"

	"usertable/internal/model"
)

// Memory is a slice-backed Backend.
type Memory struct {
	rows   []model.Row
	nextID int64
}

func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

func (m *Memory) List() ([]model.Row, error) {
	out := make([]model.Row, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *Memory) Insert(r model.Row) (model.Row, error) {
	r.ID = m.nextID
	m.nextID++
	m.rows = append(m.rows, r)
	return r, nil
}

func (m *Memory) Update(id int64, r model.Row) (bool, error) {
	i := m.index(id)
	if i < 0 {
		return false, nil
	}
	r.ID = id
	m.rows[i] = r
	return true, nil
}

func (m *Memory) Remove(id int64) (bool, error) {
	i := m.index(id)
	if i < 0 {
		return false, nil
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return true, nil
}

func (m *Memory) Restore(rs []model.Row) error {
	for _, r := range rs {
		if m.index(r.ID) >= 0 {
			return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		m.rows = append(m.rows, r)
		// Ids are never reused, even after the highest row is deleted.
		if r.ID >= m.nextID {
			m.nextID = r.ID + 1
		}
	}
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) index(id int64) int {
	for i, r := range m.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}
