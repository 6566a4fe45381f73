// Package sqlite keeps carts and sessions in a local database file, for
// single-node deployments without Redis.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

type Slot struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and prepares the schema.
func Open(ctx context.Context, path string) (*Slot, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &Slot{db: db}, nil
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("slot get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Slot) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("slot set %s: %w", key, err)
	}
	return nil
}

func (s *Slot) Clear(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("slot clear %s: %w", key, err)
	}
	return nil
}

func (s *Slot) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Slot) Close() error {
	return s.db.Close()
}
