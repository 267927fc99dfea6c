package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SessionStore implements domain.SessionStore using a single-row SQLite
// table. SQLite serializes the read-modify-write on the slot, so concurrent
// sign-out and session reads never interleave mid-update.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a new SQLite-backed SessionStore.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db.SqlDB}
}

// Token returns the stored token, or "" if no session exists.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, "SELECT token FROM session WHERE slot = 1").Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query session: %w", err)
	}
	return token, nil
}

// Save stores the token, replacing any previous session.
func (s *SessionStore) Save(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (slot, token, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at
	`, token, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an empty slot is a no-op.
func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE slot = 1"); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
