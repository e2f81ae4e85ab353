// Package sqlite stores JSON encoded records in a SQLite key/value table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS mbrewrite_record (
    record_key TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

type Store struct {
	db *sql.DB
}

// Open opens (creating when needed) the SQLite database at dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %v: %w", dsn, err)
	}
	ret, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return ret, nil
}

// New ensures the record table exists on db.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create record table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM mbrewrite_record WHERE record_key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return false, fmt.Errorf("failed to decode %v: %w", key, err)
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO mbrewrite_record (record_key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(record_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC())
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM mbrewrite_record WHERE record_key = ?", key)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
