package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore keeps the session in a single key/value table.
type SQLiteStore struct {
	db        *sql.DB
	writeLock sync.Mutex // sqlite does not support concurrent writes
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session.OpenSQLiteStore: open db: %w", err)
	}
	// One connection keeps the busy_timeout pragma in effect for every query.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("session.OpenSQLiteStore: ping db: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session_kv (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)`); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("session.OpenSQLiteStore: create schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("session.OpenSQLiteStore: set busy timeout: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM session_kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return value, err
}

func (s *SQLiteStore) put(ctx context.Context, key string, value []byte) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	return err
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	data, err := s.get(ctx, KeyToken)
	if err != nil {
		return "", fmt.Errorf("session.SQLiteStore.Token: %w", err)
	}
	return string(data), nil
}

func (s *SQLiteStore) SetToken(ctx context.Context, token string) error {
	if err := s.put(ctx, KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("session.SQLiteStore.SetToken: %w", err)
	}
	return nil
}

func (s *SQLiteStore) User(ctx context.Context) (json.RawMessage, error) {
	data, err := s.get(ctx, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("session.SQLiteStore.User: %w", err)
	}
	return decodeUser(data), nil
}

func (s *SQLiteStore) SetUser(ctx context.Context, user json.RawMessage) error {
	if err := validateUser(user); err != nil {
		return err
	}
	if err := s.put(ctx, KeyUser, user); err != nil {
		return fmt.Errorf("session.SQLiteStore.SetUser: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()
	if _, err := s.db.ExecContext(ctx, "DELETE FROM session_kv WHERE key IN (?, ?)", KeyToken, KeyUser); err != nil {
		return fmt.Errorf("session.SQLiteStore.Clear: %w", err)
	}
	return nil
}
