package secondary

import (
	"context"

	"github.com/example/prodline/internal/core/session"
)

// SessionStore persists the single operator session and its session id.
// Save replaces both atomically; Clear removes both atomically.
type SessionStore interface {
	Save(ctx context.Context, s *session.Session, sessionID string) error

	// Load returns the persisted session and its id, or (nil, "", nil) when
	// no session is stored.
	Load(ctx context.Context) (*session.Session, string, error)

	Clear(ctx context.Context) error

	// SessionID returns just the stored session id ("" when absent).
	SessionID(ctx context.Context) (string, error)
}

// SessionWatcher observes the session store for changes made by another
// console instance and delivers them as change events. The channel is closed
// when the context is cancelled.
type SessionWatcher interface {
	Watch(ctx context.Context) <-chan session.ChangeEvent
}
