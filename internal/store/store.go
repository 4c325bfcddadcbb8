// Package store is the durable backing for the engine: a small SQLite
// key-value table holding the full snapshot blob and the current session.
// Every write replaces the whole value for its key; there are no partial
// snapshot writes.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"homeroom/internal/models"
	_ "modernc.org/sqlite"
)

const (
	keySnapshot = "snapshot"
	keySession  = "session"
)

// Store wraps the database connection
type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the store database at dir/homeroom.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	conn, err := sql.Open("sqlite", filepath.Join(dir, "homeroom.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA synchronous=NORMAL")

	return New(conn)
}

// New wraps an existing connection, creating the schema if needed.
func New(conn *sql.DB) (*Store, error) {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) get(key string) ([]byte, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *Store) put(key string, value []byte) error {
	_, err := s.conn.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// LoadSnapshot restores the last saved snapshot. Absent or malformed data
// degrades to an empty snapshot rather than an error: a corrupt cache must
// never take the app down, the next sync rebuilds it.
func (s *Store) LoadSnapshot() *models.Snapshot {
	data, err := s.get(keySnapshot)
	if err != nil {
		slog.Warn("load snapshot", "err", err)
		return models.NewSnapshot()
	}
	if data == nil {
		return models.NewSnapshot()
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("snapshot corrupt, starting empty", "err", err)
		return models.NewSnapshot()
	}
	snap.Normalize()
	return &snap
}

// SaveSnapshot durably writes the full snapshot, replacing the prior value.
func (s *Store) SaveSnapshot(snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.put(keySnapshot, data)
}

// LoadSession returns the stored principal, or nil if nobody is logged in.
func (s *Store) LoadSession() (*models.User, error) {
	data, err := s.get(keySession)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &user, nil
}

// SaveSession stores the authenticated principal.
func (s *Store) SaveSession(user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.put(keySession, data)
}

// ClearSession removes the stored principal.
func (s *Store) ClearSession() error {
	if _, err := s.conn.Exec(`DELETE FROM kv WHERE key = ?`, keySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
