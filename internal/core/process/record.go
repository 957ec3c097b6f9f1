// Package process contains the pure business logic for production process
// tracking. This is part of the Functional Core - no I/O, only pure functions
// and in-memory state.
package process

import (
	"strings"
	"time"
)

// StatusRunning is the backend status value that marks a process as running.
// Comparison is always trimmed and case-insensitive.
const StatusRunning = "running"

// Record is the canonical shape of one production step on a job card.
// Field-name variants from the backend (PascalCase vs camelCase) are unified
// at the network boundary; nothing past the API adapter sees raw payloads.
type Record struct {
	ProcessID            string
	JobBookingContentsID string
	FormNo               string

	ProcessName   string
	Client        string
	JobName       string
	ComponentName string
	PWONo         string
	PWODate       string

	ScheduleQty    int64
	QtyProduced    int64
	PaperIssuedQty int64

	// CurrentStatus is free-text from the backend. It goes stale the moment
	// a start/complete/cancel succeeds; the registry is the live view.
	CurrentStatus string

	// RunningProductionID and RunningMachineID are set by the backend when
	// it already considers this process running.
	RunningProductionID string
	RunningMachineID    string
}

// IsRunning reports whether the backend considers this process running.
func (r Record) IsRunning() bool {
	return strings.EqualFold(strings.TrimSpace(r.CurrentStatus), StatusRunning)
}

// PaperIssued reports whether paper has been issued for this process.
// A process without issued paper cannot be started.
func (r Record) PaperIssued() bool {
	return r.PaperIssuedQty > 0
}

// FormNumber extracts the short display suffix of a form number, the last
// underscore-separated token ("JC_2024_0042_3" -> "3").
func FormNumber(formNo string) string {
	if formNo == "" {
		return ""
	}
	parts := strings.Split(formNo, "_")
	return parts[len(parts)-1]
}

// RunningEntry is the local bookkeeping for one running process: when the
// operator started it, which production run the backend issued for it, and
// the process data the entry was created from. Entries live only as long as
// the session; they are not persisted.
type RunningEntry struct {
	StartedAt    time.Time
	ProductionID string
	Process      Record
}
