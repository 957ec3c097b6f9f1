package process

import (
	"errors"
	"sync"
)

// ErrProductionIDConflict is returned by Upsert when an incoming entry
// carries a production id different from the one already registered for the
// same identity. The registered id is kept; the caller decides how loudly to
// report the mismatch.
var ErrProductionIDConflict = errors.New("conflicting production id for running process")

// Registry tracks locally-known running processes, keyed by Identity.
// The same identity can be populated from two origins at different times -
// a fresh start and server-reported pre-existing running state - so inserts
// go through a merge where the first non-empty production id wins.
type Registry struct {
	mu      sync.Mutex
	entries map[Identity]RunningEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Identity]RunningEntry)}
}

// Get returns the entry for an identity, if one is tracked.
func (r *Registry) Get(id Identity) (RunningEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}

// Upsert inserts or merges an entry and returns the effective entry.
//
// Merge rules for an existing entry:
//   - the original start time is kept
//   - an absent production id is filled from the incoming entry
//   - a present production id is never overwritten; if the incoming entry
//     carries a different non-empty id, ErrProductionIDConflict is returned
//     alongside the kept entry
//   - the source process data is refreshed from the incoming entry
func (r *Registry) Upsert(id Identity, entry RunningEntry) (RunningEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[id]
	if !ok {
		r.entries[id] = entry
		return entry, nil
	}

	merged := existing
	merged.Process = entry.Process

	var err error
	switch {
	case existing.ProductionID == "":
		merged.ProductionID = entry.ProductionID
	case entry.ProductionID != "" && entry.ProductionID != existing.ProductionID:
		err = ErrProductionIDConflict
	}

	r.entries[id] = merged
	return merged, err
}

// Remove drops the entry for an identity. Used when a complete or cancel
// operation succeeds.
func (r *Registry) Remove(id Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Clear drops all entries. Used on logout and forced teardown.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[Identity]RunningEntry)
}

// Len returns the number of tracked running processes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
