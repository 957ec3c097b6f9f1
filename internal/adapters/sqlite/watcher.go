package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/prodline/internal/core/session"
)

// SessionWatcher polls the sessions table and emits a change event whenever
// another console instance replaces or clears the stored session. It
// implements secondary.SessionWatcher.
type SessionWatcher struct {
	db       *sql.DB
	interval time.Duration
	log      logrus.FieldLogger
}

// NewSessionWatcher creates a watcher that polls at the given interval.
func NewSessionWatcher(db *sql.DB, interval time.Duration, log logrus.FieldLogger) *SessionWatcher {
	return &SessionWatcher{db: db, interval: interval, log: log}
}

// Watch starts polling and delivers change events until ctx is cancelled.
// The returned channel is closed on cancellation.
func (w *SessionWatcher) Watch(ctx context.Context) <-chan session.ChangeEvent {
	events := make(chan session.ChangeEvent, 4)

	go func() {
		defer close(events)

		lastPayload, lastID, err := w.snapshot(ctx)
		if err != nil {
			w.log.WithError(err).Warn("session watcher: initial read failed")
		}

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			payload, id, err := w.snapshot(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				w.log.WithError(err).Warn("session watcher: read failed")
				continue
			}

			if id != lastID {
				w.emit(ctx, events, session.ChangeEvent{
					Key:      session.SessionIDKey,
					OldValue: lastID,
					NewValue: id,
				})
			}
			if payload != lastPayload {
				w.emit(ctx, events, session.ChangeEvent{
					Key:      session.SessionKey,
					OldValue: lastPayload,
					NewValue: payload,
				})
			}
			lastPayload, lastID = payload, id
		}
	}()

	return events
}

func (w *SessionWatcher) emit(ctx context.Context, events chan<- session.ChangeEvent, ev session.ChangeEvent) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

func (w *SessionWatcher) snapshot(ctx context.Context) (payload, sessionID string, err error) {
	err = w.db.QueryRowContext(ctx,
		"SELECT payload, session_id FROM sessions WHERE id = 1",
	).Scan(&payload, &sessionID)
	if err == sql.ErrNoRows {
		return "", "", nil
	}
	return payload, sessionID, err
}
