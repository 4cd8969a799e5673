package rows

import (
	"errors"
	"fmt"

	"usertable/internal/model"

	"go.uber.org/zap"
)

var (
	ErrDuplicateID = errors.New("duplicate row id")
	ErrInvalidID   = errors.New("invalid row id")
)

// Backend holds the ordered collection behind a Store.
//
// Update and Remove report whether a row with the given id existed. Insert assigns
// the id; the id carried by the argument is ignored.
type Backend interface {
	List() ([]model.Row, error)
	Insert(r model.Row) (model.Row, error)
	Update(id int64, r model.Row) (bool, error)
	Remove(id int64) (bool, error)
	// Restore appends rows keeping their ids.
	Restore(rs []model.Row) error
	Close() error
}

// Store is the row store shared by the table view and the editor.
// It is not safe for concurrent use; callers mutate it from the UI event loop only.
type Store struct {
	backend Backend
	log     *zap.Logger

	rows []model.Row

	nextSub int
	subs    []subscriber
}

type subscriber struct {
	id int
	fn func([]model.Row)
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func New(b Backend, opts ...Option) *Store {
	s := &Store{backend: b, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemoryStore is shorthand for New(NewMemory(), opts...).
func NewMemoryStore(opts ...Option) *Store {
	return New(NewMemory(), opts...)
}

// Seed loads initial rows, keeping their ids.
func (s *Store) Seed(rs []model.Row) error {
	seen := map[int64]bool{}
	for _, r := range s.rows {
		seen[r.ID] = true
	}
	for _, r := range rs {
		if r.ID <= 0 {
			return fmt.Errorf("rows: seed: %w: %d", ErrInvalidID, r.ID)
		}
		if seen[r.ID] {
			return fmt.Errorf("rows: seed: %w: %d", ErrDuplicateID, r.ID)
		}
		if !r.Role.Valid() {
			return fmt.Errorf("rows: seed: row %d: %w: %q", r.ID, model.ErrUnknownRole, r.Role)
		}
		if !model.ValidMobile(r.Mobile) {
			return fmt.Errorf("rows: seed: row %d: %w: %q", r.ID, model.ErrNotNumeric, r.Mobile)
		}
		seen[r.ID] = true
	}
	if err := s.backend.Restore(rs); err != nil {
		return fmt.Errorf("rows: seed: %w", err)
	}
	if err := s.reload(); err != nil {
		return fmt.Errorf("rows: seed: %w", err)
	}
	s.log.Debug("rows seeded", zap.Int("count", len(rs)))
	s.notify()
	return nil
}

// Add appends r and returns the stored row. The store assigns the id.
func (s *Store) Add(r model.Row) (model.Row, error) {
	stored, err := s.backend.Insert(r)
	if err != nil {
		return model.Row{}, fmt.Errorf("rows: add: %w", err)
	}
	if err := s.reload(); err != nil {
		return model.Row{}, fmt.Errorf("rows: add: %w", err)
	}
	s.log.Info("row added", zap.Int64("id", stored.ID), zap.Int64("draftID", r.ID))
	s.notify()
	return stored, nil
}

// Edit replaces the field values of the row with id. An absent id is a no-op.
func (s *Store) Edit(id int64, r model.Row) error {
	r.ID = id
	ok, err := s.backend.Update(id, r)
	if err != nil {
		return fmt.Errorf("rows: edit %d: %w", id, err)
	}
	if !ok {
		s.log.Debug("edit of absent row ignored", zap.Int64("id", id))
		return nil
	}
	if err := s.reload(); err != nil {
		return fmt.Errorf("rows: edit %d: %w", id, err)
	}
	s.log.Info("row edited", zap.Int64("id", id))
	s.notify()
	return nil
}

// Delete removes the row with id. An absent id is a no-op.
func (s *Store) Delete(id int64) error {
	ok, err := s.backend.Remove(id)
	if err != nil {
		return fmt.Errorf("rows: delete %d: %w", id, err)
	}
	if !ok {
		s.log.Debug("delete of absent row ignored", zap.Int64("id", id))
		return nil
	}
	if err := s.reload(); err != nil {
		return fmt.Errorf("rows: delete %d: %w", id, err)
	}
	s.log.Info("row deleted", zap.Int64("id", id))
	s.notify()
	return nil
}

// Rows returns a copy of the current collection in order.
func (s *Store) Rows() []model.Row {
	out := make([]model.Row, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *Store) Len() int { return len(s.rows) }

func (s *Store) Get(id int64) (model.Row, bool) {
	for _, r := range s.rows {
		if r.ID == id {
			return r, true
		}
	}
	return model.Row{}, false
}

// Subscribe registers fn to be called after every mutation that changed the
// collection. Subscribers run synchronously in registration order.
func (s *Store) Subscribe(fn func([]model.Row)) (unsubscribe func()) {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) reload() error {
	rs, err := s.backend.List()
	if err != nil {
		return err
	}
	s.rows = rs
	return nil
}

func (s *Store) notify() {
	subs := append([]subscriber(nil), s.subs...)
	for _, sub := range subs {
		sub.fn(s.Rows())
	}
}
