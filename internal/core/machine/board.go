// Package machine contains the pure logic for the running-machines board:
// which machine statuses are shown, who may view them, and their order.
package machine

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/example/prodline/internal/core/session"
)

// Status is one machine's latest reported state.
type Status struct {
	MachineID     string
	MachineName   string
	EmployeeID    string
	MachineStatus string
	JobName       string
	JobNumber     string
	Process       string
	LastUpdated   string
}

// IsRunning reports whether the machine is currently running a process.
func (s Status) IsRunning() bool {
	return strings.EqualFold(strings.TrimSpace(s.MachineStatus), "running")
}

var lastUpdatedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseLastUpdated(s string) (time.Time, bool) {
	for _, layout := range lastUpdatedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CanView reports whether the operator may open this machine's status:
// the machine must be in the operator's machine list and the process must
// have been started by the operator (employee id matches the ledger id).
func CanView(s Status, sess *session.Session) bool {
	if sess == nil {
		return false
	}
	if !sess.HasMachine(s.MachineID) {
		return false
	}
	return strings.TrimSpace(s.EmployeeID) == strconv.FormatInt(sess.LedgerID, 10)
}

// Board filters a status list down to running machines and orders them:
// viewable machines first, then ascending by last-updated time (oldest
// first). Unparseable timestamps sort as equal.
func Board(statuses []Status, sess *session.Session) []Status {
	var running []Status
	for _, s := range statuses {
		if s.IsRunning() {
			running = append(running, s)
		}
	}

	sort.SliceStable(running, func(i, j int) bool {
		vi, vj := CanView(running[i], sess), CanView(running[j], sess)
		if vi != vj {
			return vi
		}
		ti, oki := parseLastUpdated(running[i].LastUpdated)
		tj, okj := parseLastUpdated(running[j].LastUpdated)
		if !oki || !okj {
			return false
		}
		return ti.Before(tj)
	})

	return running
}
