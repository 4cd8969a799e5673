package rows

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"usertable/internal/model"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database that lives as long as its
// single pooled connection.
const MemoryDSN = ":memory:"

// SQLite is a Backend over a modernc.org/sqlite database.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL DEFAULT '',
	email    TEXT NOT NULL DEFAULT '',
	role     TEXT NOT NULL DEFAULT '',
	mobile   TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS users_position ON users(position);
`

// OpenSQLite opens dsn and ensures the schema. An empty dsn means MemoryDSN.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = MemoryDSN
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Each new connection to :memory: is a fresh, empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) List() ([]model.Row, error) {
	rs, err := s.db.Query(`SELECT id, name, email, role, mobile FROM users ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []model.Row
	for rs.Next() {
		var r model.Row
		var role string
		if err := rs.Scan(&r.ID, &r.Name, &r.Email, &role, &r.Mobile); err != nil {
			return nil, err
		}
		r.Role = model.Role(role)
		out = append(out, r)
	}
	return out, rs.Err()
}

func (s *SQLite) Insert(r model.Row) (model.Row, error) {
	res, err := s.db.Exec(
		`INSERT INTO users(name, email, role, mobile, position)
		 VALUES(?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM users))`,
		r.Name, r.Email, string(r.Role), r.Mobile,
	)
	if err != nil {
		return model.Row{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Row{}, err
	}
	r.ID = id
	return r, nil
}

func (s *SQLite) Update(id int64, r model.Row) (bool, error) {
	res, err := s.db.Exec(
		`UPDATE users SET name = ?, email = ?, role = ?, mobile = ? WHERE id = ?`,
		r.Name, r.Email, string(r.Role), r.Mobile, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLite) Remove(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLite) Restore(rs []model.Row) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for _, r := range rs {
		var exists int
		qerr := tx.QueryRow(`SELECT 1 FROM users WHERE id = ?`, r.ID).Scan(&exists)
		if qerr == nil {
			return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		if !errors.Is(qerr, sql.ErrNoRows) {
			return qerr
		}
		if _, err := tx.Exec(
			`INSERT INTO users(id, name, email, role, mobile, position)
			 VALUES(?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM users))`,
			r.ID, r.Name, r.Email, string(r.Role), r.Mobile,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
