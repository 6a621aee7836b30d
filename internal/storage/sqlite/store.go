// Package sqlite provides the file-backed merchant store.
//
// Table:
//
//	merchants(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, description TEXT NULL)
//
// AUTOINCREMENT keeps SQLite from handing out the id of a deleted last row again.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/tinoosan/merchants/internal/errs"
	"github.com/tinoosan/merchants/internal/model"
)

const schema = `CREATE TABLE IF NOT EXISTS merchants (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NULL
)`

// busyTimeoutMillis bounds how long a writer waits on a locked database.
const busyTimeoutMillis = 5000

// Store keeps merchants in a single SQLite file. Every method acquires its own
// connection and releases it before returning. Isolation between concurrent
// callers is left to SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at path and ensures the merchants table exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Set("_busy_timeout", fmt.Sprint(busyTimeoutMillis))
	q.Set("_journal_mode", "WAL")
	return "file:" + path + "?" + q.Encode()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Ready pings the database to verify it is reachable.
func (s *Store) Ready(ctx context.Context) error { return s.db.PingContext(ctx) }

// withConn runs fn on a connection owned by this call only.
func (s *Store) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

func toMerchant(id int64, name string, desc sql.NullString) model.Merchant {
	m := model.Merchant{ID: id, Name: name}
	if desc.Valid {
		d := desc.String
		m.Description = &d
	}
	return m
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// List returns all merchants ordered by ascending id.
func (s *Store) List(ctx context.Context) ([]model.Merchant, error) {
	out := make([]model.Merchant, 0)
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, "SELECT id, name, description FROM merchants ORDER BY id")
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				id   int64
				name string
				desc sql.NullString
			)
			if err := rows.Scan(&id, &name, &desc); err != nil {
				return err
			}
			out = append(out, toMerchant(id, name, desc))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: list: %w", err)
	}
	return out, nil
}

// Get returns a merchant by id.
func (s *Store) Get(ctx context.Context, id int64) (model.Merchant, error) {
	var m model.Merchant
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		var (
			name string
			desc sql.NullString
		)
		err := conn.QueryRowContext(ctx, "SELECT name, description FROM merchants WHERE id = ?", id).Scan(&name, &desc)
		if err != nil {
			return err
		}
		m = toMerchant(id, name, desc)
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Merchant{}, errs.NotFound(id)
	}
	if err != nil {
		return model.Merchant{}, fmt.Errorf("sqlite: get: %w", err)
	}
	return m, nil
}

// Create inserts a merchant and returns it with the database-assigned id.
func (s *Store) Create(ctx context.Context, in model.Input) (model.Merchant, error) {
	var id int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx,
			"INSERT INTO merchants (name, description) VALUES (?, ?)",
			in.Name, nullable(in.Description),
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return model.Merchant{}, fmt.Errorf("sqlite: create: %w", err)
	}
	return model.FromInput(id, in), nil
}

// Update replaces name and description of the merchant with id.
func (s *Store) Update(ctx context.Context, id int64, in model.Input) (model.Merchant, error) {
	var n int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx,
			"UPDATE merchants SET name = ?, description = ? WHERE id = ?",
			in.Name, nullable(in.Description), id,
		)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return model.Merchant{}, fmt.Errorf("sqlite: update: %w", err)
	}
	if n == 0 {
		return model.Merchant{}, errs.NotFound(id)
	}
	return model.FromInput(id, in), nil
}

// Delete removes the merchant with id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	var n int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, "DELETE FROM merchants WHERE id = ?", id)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("sqlite: delete: %w", err)
	}
	if n == 0 {
		return errs.NotFound(id)
	}
	return nil
}
