package app

import (
	"context"
	"strings"

	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/ports/secondary"
)

// ProcessServiceImpl implements the ProcessService interface.
type ProcessServiceImpl struct {
	gateway secondary.Gateway
	state   *State
}

// NewProcessService creates a new ProcessService with injected dependencies.
func NewProcessService(gateway secondary.Gateway, state *State) *ProcessServiceImpl {
	return &ProcessServiceImpl{gateway: gateway, state: state}
}

var _ primary.ProcessService = (*ProcessServiceImpl)(nil)

// Search fetches pending processes for a job card and orders them for
// presentation: running processes as their own group, the rest ascending by
// PWO date.
func (s *ProcessServiceImpl) Search(ctx context.Context, req primary.SearchRequest) (*primary.SearchResult, error) {
	sess := s.state.Session()
	if sess == nil {
		return nil, ErrNotLoggedIn
	}

	jobCardNo := strings.TrimSpace(req.JobCardNo)
	if jobCardNo == "" {
		return nil, &ValidationError{Field: "job card number", Message: "must not be empty"}
	}
	machineID := req.MachineID
	if machineID == "" {
		machineID = s.state.SelectedMachine()
	}
	if machineID == "" {
		return nil, &ValidationError{Field: "machine", Message: "no machine selected"}
	}
	if !sess.HasMachine(machineID) {
		return nil, &ValidationError{Field: "machine", Message: "machine is not assigned to this operator"}
	}

	records, err := s.gateway.PendingProcesses(ctx, secondary.PendingQuery{
		UserID:      sess.UserID,
		MachineID:   machineID,
		JobCardNo:   jobCardNo,
		ManualEntry: req.ManualEntry,
		Database:    sess.Database,
	})
	if err != nil {
		return nil, err
	}

	running, pending := process.Split(records)
	process.SortPending(pending)

	return &primary.SearchResult{
		JobCardNo: jobCardNo,
		Running:   running,
		Pending:   pending,
	}, nil
}
