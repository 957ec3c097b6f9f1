// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/prodline/internal/core/session"
)

// SessionRepository implements secondary.SessionStore with SQLite. The
// sessions table holds at most one row; session and session id are written
// together so another console instance never observes one without the other.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save replaces the stored session and session id.
func (r *SessionRepository) Save(ctx context.Context, s *session.Session, sessionID string) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, payload, session_id, updated_at) VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, session_id = excluded.session_id, updated_at = CURRENT_TIMESTAMP`,
		string(payload), sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored session and its id, or (nil, "", nil) when no
// session is stored.
func (r *SessionRepository) Load(ctx context.Context) (*session.Session, string, error) {
	var payload, sessionID string
	err := r.db.QueryRowContext(ctx,
		"SELECT payload, session_id FROM sessions WHERE id = 1",
	).Scan(&payload, &sessionID)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load session: %w", err)
	}

	s := &session.Session{}
	if err := json.Unmarshal([]byte(payload), s); err != nil {
		return nil, "", fmt.Errorf("failed to decode session: %w", err)
	}
	return s, sessionID, nil
}

// Clear removes the stored session.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// SessionID returns just the stored session id, or "" when no session is
// stored.
func (r *SessionRepository) SessionID(ctx context.Context) (string, error) {
	var sessionID string
	err := r.db.QueryRowContext(ctx,
		"SELECT session_id FROM sessions WHERE id = 1",
	).Scan(&sessionID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session id: %w", err)
	}
	return sessionID, nil
}
