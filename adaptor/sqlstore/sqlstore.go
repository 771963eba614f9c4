// FILE: lixenwraith/dotenv/adaptor/sqlstore/sqlstore.go

// Package sqlstore mirrors accepted pairs into a SQLite table.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lixenwraith/dotenv"
	_ "modernc.org/sqlite"
)

// DefaultTable is used by Open.
const DefaultTable = "dotenv"

// Store is a dotenv.Adaptor writing each pair as a row of (key, value).
// Values are stored in their string form.
type Store struct {
	mu    sync.Mutex
	db    *sql.DB
	table string
	owned bool // db was opened by Open and is closed by Close
}

var _ dotenv.Adaptor = (*Store)(nil)

// Open creates or opens the database at path and prepares DefaultTable.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}
	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	s, err := New(db, DefaultTable)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// New prepares table in an existing database. The caller keeps ownership of db.
func New(db *sql.DB, table string) (*Store, error) {
	if !dotenv.IsValidKey(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	_, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			is_null INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`, table))
	if err != nil {
		return nil, fmt.Errorf("create store table: %w", err)
	}

	return &Store{db: db, table: table}, nil
}

// Put upserts one pair.
func (s *Store) Put(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	isNull := 0
	if value == nil {
		isNull = 1
	}
	_, err := s.db.Exec(fmt.Sprintf(`
		INSERT INTO %s (key, value, is_null, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			is_null = excluded.is_null,
			updated_at = excluded.updated_at
	`, s.table), key, dotenv.FormatValue(value), isNull)
	if err != nil {
		return fmt.Errorf("store put %s: %w", key, err)
	}
	return nil
}

// Get returns the stored string form of key, or nil for a stored nil.
// found is false when the key is absent.
func (s *Store) Get(ctx context.Context, key string) (value any, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		str string
		n   int
	)
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT value, is_null FROM %s WHERE key = ?`, s.table), key)
	if err := row.Scan(&str, &n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store get %s: %w", key, err)
	}
	if n != 0 {
		return nil, true, nil
	}
	return str, true, nil
}

// All returns every stored pair; stored nils map to nil.
func (s *Store) All(ctx context.Context) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT key, value, is_null FROM %s`, s.table))
	if err != nil {
		return nil, fmt.Errorf("store query: %w", err)
	}
	defer rows.Close()

	out := make(map[string]any)
	for rows.Next() {
		var (
			key, value string
			n          int
		)
		if err := rows.Scan(&key, &value, &n); err != nil {
			return nil, fmt.Errorf("store scan: %w", err)
		}
		if n != 0 {
			out[key] = nil
		} else {
			out[key] = value
		}
	}
	return out, rows.Err()
}

// Close closes the database if Open created it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
