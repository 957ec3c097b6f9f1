// Package session contains the pure logic for operator sessions: the session
// payload shape, session id generation, and the reaction to session changes
// made by another console instance.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage keys for the persisted session. The payload and the session id are
// stored under separate keys so that a replacement login can be detected
// without comparing payloads.
const (
	SessionKey   = "prodline_session"
	SessionIDKey = "prodline_session_id"
)

// Machine is one machine the operator is allowed to run.
type Machine struct {
	ID   string `json:"machineId"`
	Name string `json:"machineName"`
}

// Session is the operator context restored on boot and torn down on logout.
type Session struct {
	Username string    `json:"username"`
	UserID   int64     `json:"userId"`
	LedgerID int64     `json:"ledgerId"`
	Database string    `json:"database"`
	Machines []Machine `json:"machines"`
}

// MachineByID finds a machine in the operator's list.
func (s *Session) MachineByID(id string) (Machine, bool) {
	for _, m := range s.Machines {
		if m.ID == id {
			return m, true
		}
	}
	return Machine{}, false
}

// HasMachine reports whether the given machine belongs to the operator.
func (s *Session) HasMachine(id string) bool {
	_, ok := s.MachineByID(id)
	return ok
}

// NewID generates a session id: millisecond timestamp plus a short random
// suffix. The id identifies one login, not the session payload.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d_%s", now.UnixMilli(), suffix)
}

// ChangeEvent describes an externally-observed change to a stored session
// value, the console analog of a cross-tab storage notification.
type ChangeEvent struct {
	Key      string
	OldValue string
	NewValue string
}

// Reaction is what the console must do in response to a session change.
type Reaction int

const (
	// ReactionNone: not a session change, or our own write.
	ReactionNone Reaction = iota
	// ReactionLogout: the session was cleared elsewhere; mirror the logout.
	ReactionLogout
	// ReactionTeardown: a different login replaced this session; tear down
	// all local state and show a blocking notice before the entry screen.
	ReactionTeardown
)

// ReactTo decides the reaction to a change event given this instance's own
// session id. It is a pure function of the (key, old, new) triple.
func ReactTo(ev ChangeEvent, ownID string) Reaction {
	if ev.Key != SessionIDKey {
		return ReactionNone
	}
	if ev.NewValue == "" {
		return ReactionLogout
	}
	if ownID != "" && ev.NewValue != ownID {
		return ReactionTeardown
	}
	return ReactionNone
}
