// Package primary defines the primary ports (driving adapters) for the
// application. The CLI commands and the interactive console call the
// application exclusively through these interfaces.
package primary

import (
	"context"

	"github.com/example/prodline/internal/core/machine"
	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/core/session"
)

// LoginRequest carries operator credentials. The backend authenticates by
// username and target database; session continuity is cookie-based.
type LoginRequest struct {
	Username string
	Database string
}

// AuthService manages the operator session lifecycle.
type AuthService interface {
	// Login authenticates, persists the session, and makes it current.
	Login(ctx context.Context, req LoginRequest) (*session.Session, error)

	// Restore loads a persisted session on boot. Returns nil when none is
	// stored.
	Restore(ctx context.Context) (*session.Session, error)

	// Logout clears the current and persisted session and all local
	// running-process tracking.
	Logout(ctx context.Context) error

	// Teardown clears local state only, without touching the store. Used
	// when another console instance replaced this session.
	Teardown()
}

// SearchRequest locates pending processes for a job card on a machine.
type SearchRequest struct {
	MachineID   string
	JobCardNo   string
	ManualEntry bool
}

// SearchResult is a fetched process list, already split and sorted for
// presentation: running first as their own group, pending ascending by PWO
// date.
type SearchResult struct {
	JobCardNo string
	Running   []process.Record
	Pending   []process.Record
}

// ProcessService fetches and orders pending processes.
type ProcessService interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

// Warning is a surfaced statusWarning: the operation completed but its side
// effects were suppressed.
type Warning struct {
	Message     string
	StatusValue string
}

// OperationResult is the outcome of a start/complete/cancel run.
type OperationResult struct {
	// Warning, when set, means no state was changed and no navigation
	// should happen; show it verbatim.
	Warning *Warning

	// Entry is the registry entry after a successful start or view.
	Entry process.RunningEntry

	// ReturnToSearch signals successful completion/cancellation: the
	// running screen is done and the console returns to search.
	ReturnToSearch bool
}

// CompleteCommand carries operator-entered quantities as typed, still
// unvalidated input.
type CompleteCommand struct {
	Process       process.Record
	ProductionQty string
	WastageQty    string
}

// LifecycleService drives a process through start, complete and cancel,
// wrapping the async job polling and the local registry bookkeeping.
type LifecycleService interface {
	Start(ctx context.Context, proc process.Record, machineID string) (*OperationResult, error)
	Complete(ctx context.Context, cmd CompleteCommand) (*OperationResult, error)

	// Cancel dispatches the cancellation. Interactive confirmation is the
	// caller's responsibility and must happen before this call.
	Cancel(ctx context.Context, proc process.Record) (*OperationResult, error)

	// ViewRunning reconciles a server-reported running process into the
	// registry and returns the effective entry.
	ViewRunning(proc process.Record) (process.RunningEntry, error)
}

// MachineService serves the running-machines board.
type MachineService interface {
	RunningBoard(ctx context.Context) ([]machine.Status, error)
}
