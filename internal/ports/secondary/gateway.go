// Package secondary defines the secondary ports (driven adapters) for the
// application: the job-tracking backend gateway, the session store, and the
// clock.
package secondary

import (
	"context"

	"github.com/example/prodline/internal/core/machine"
	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/core/session"
)

// Async job states as reported by the job-status endpoint. The client treats
// pending and processing as non-terminal.
const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// StatusWarning is a soft-failure payload on a completed job: the operation
// finished, but its side effects must be suppressed and the warning shown.
type StatusWarning struct {
	Message     string
	StatusValue string
}

// Job is the observed state of a server-side async job.
type Job struct {
	Status       string
	ProductionID string
	Error        string
	Warning      *StatusWarning
}

// Terminal reports whether polling should stop.
func (j *Job) Terminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	UserID   int64
	LedgerID int64
	Machines []session.Machine
}

// PendingQuery identifies one pending-process lookup.
type PendingQuery struct {
	UserID      int64
	MachineID   string
	JobCardNo   string
	ManualEntry bool
	Database    string
}

// StartRequest carries everything the backend needs to start a process.
type StartRequest struct {
	UserID               int64
	EmployeeID           int64
	ProcessID            string
	JobBookingContentsID string
	MachineID            string
	JobCardFormNo        string
	Database             string
}

// CompleteRequest finishes a production run with operator-entered counts.
type CompleteRequest struct {
	UserID        int64
	ProductionID  string
	ProductionQty int64
	WastageQty    int64
	Database      string
}

// CancelRequest aborts a production run.
type CancelRequest struct {
	UserID       int64
	ProductionID string
	Database     string
}

// Gateway is the REST backend surface the console consumes. Implementations
// normalize wire payloads into canonical records; callers never see raw
// field-name variants. The gateway does not retry - polling policy lives a
// layer up.
type Gateway interface {
	Login(ctx context.Context, username, database string) (*LoginResult, error)
	PendingProcesses(ctx context.Context, q PendingQuery) ([]process.Record, error)
	StartProcess(ctx context.Context, req StartRequest) (jobID string, err error)
	CompleteProcess(ctx context.Context, req CompleteRequest) (jobID string, err error)
	CancelProcess(ctx context.Context, req CancelRequest) (jobID string, err error)
	JobStatus(ctx context.Context, jobID string) (*Job, error)
	LatestMachineStatus(ctx context.Context, database string) ([]machine.Status, error)
}
