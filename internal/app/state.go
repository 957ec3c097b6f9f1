// Package app implements the application services behind the primary ports:
// session lifecycle, process search, the start/complete/cancel lifecycle
// with async job polling, and the running-machines board.
package app

import (
	"sync"

	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/core/session"
)

// State is the console-instance state shared across services: the current
// session, the selected machine, the running-process registry, and the set
// of identities with an unresolved operation. It is cleared as a whole on
// logout and forced teardown.
type State struct {
	mu        sync.Mutex
	session   *session.Session
	sessionID string
	machineID string
	registry  *process.Registry
	inflight  map[process.Identity]bool
}

// NewState creates empty console state.
func NewState() *State {
	return &State{
		registry: process.NewRegistry(),
		inflight: make(map[process.Identity]bool),
	}
}

// SetSession makes a session current together with its session id.
func (s *State) SetSession(sess *session.Session, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
	s.sessionID = sessionID
}

// Session returns the current session, or nil when logged out.
func (s *State) Session() *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// SessionID returns this instance's session id ("" when logged out).
func (s *State) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// SelectMachine records the operator's machine pick.
func (s *State) SelectMachine(machineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machineID = machineID
}

// SelectedMachine returns the picked machine id ("" when none).
func (s *State) SelectedMachine() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machineID
}

// Registry returns the running-process registry.
func (s *State) Registry() *process.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry
}

// BeginOperation marks an identity as having an unresolved operation.
// It returns false if one is already in flight.
func (s *State) BeginOperation(id process.Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		return false
	}
	s.inflight[id] = true
	return true
}

// EndOperation resolves the in-flight marker for an identity.
func (s *State) EndOperation(id process.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

// OperationInFlight reports whether an identity has an unresolved operation.
func (s *State) OperationInFlight(id process.Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[id]
}

// Reset drops all instance state: session, machine pick, registry entries
// and in-flight markers.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.sessionID = ""
	s.machineID = ""
	s.registry.Clear()
	s.inflight = make(map[process.Identity]bool)
}
