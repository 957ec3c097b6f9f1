package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/ports/secondary"
)

// LifecycleServiceImpl implements the LifecycleService interface: it drives
// a process through start, complete and cancel, including async job polling
// and the local registry bookkeeping.
type LifecycleServiceImpl struct {
	gateway  secondary.Gateway
	clock    secondary.Clock
	poller   *Poller
	state    *State
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewLifecycleService creates a new LifecycleService with injected
// dependencies.
func NewLifecycleService(gateway secondary.Gateway, clock secondary.Clock, poller *Poller, state *State, log logrus.FieldLogger) *LifecycleServiceImpl {
	return &LifecycleServiceImpl{
		gateway:  gateway,
		clock:    clock,
		poller:   poller,
		state:    state,
		validate: validator.New(),
		log:      log,
	}
}

var _ primary.LifecycleService = (*LifecycleServiceImpl)(nil)

// Start dispatches a start-production job, awaits it, and registers the new
// running entry.
func (s *LifecycleServiceImpl) Start(ctx context.Context, proc process.Record, machineID string) (*primary.OperationResult, error) {
	sess := s.state.Session()
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	if machineID == "" {
		machineID = s.state.SelectedMachine()
	}
	if !sess.HasMachine(machineID) {
		return nil, &ValidationError{Field: "machine", Message: "machine is not assigned to this operator"}
	}

	id := proc.Identity()
	guard := process.CanStart(process.StartContext{
		Identity:          id,
		PaperIssuedQty:    proc.PaperIssuedQty,
		CurrentStatus:     proc.CurrentStatus,
		OperationInFlight: s.state.OperationInFlight(id),
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	if !s.state.BeginOperation(id) {
		return nil, &ValidationError{Field: "process", Message: "another operation is already in progress for this process"}
	}
	defer s.state.EndOperation(id)

	jobID, err := s.gateway.StartProcess(ctx, secondary.StartRequest{
		UserID:               sess.UserID,
		EmployeeID:           sess.LedgerID,
		ProcessID:            id.ProcessID,
		JobBookingContentsID: id.JobBookingContentsID,
		MachineID:            machineID,
		JobCardFormNo:        id.FormNo,
		Database:             sess.Database,
	})
	if err != nil {
		return nil, err
	}

	job, err := s.poller.Await(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == secondary.JobFailed {
		return nil, &OperationFailedError{Message: job.Error}
	}
	if job.Warning != nil {
		// Soft failure: nothing started, show the warning and stay put.
		return &primary.OperationResult{Warning: &primary.Warning{
			Message:     job.Warning.Message,
			StatusValue: job.Warning.StatusValue,
		}}, nil
	}
	if job.ProductionID == "" {
		return nil, ErrMissingProductionID
	}

	entry, err := s.state.Registry().Upsert(id, process.RunningEntry{
		StartedAt:    s.clock.Now(),
		ProductionID: job.ProductionID,
		Process:      proc,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{"process": id.Key(), "productionId": job.ProductionID}).
			Warn("production id conflict on start, keeping registered id")
	}

	s.log.WithFields(logrus.Fields{"process": id.Key(), "productionId": entry.ProductionID}).Info("process started")
	return &primary.OperationResult{Entry: entry}, nil
}

// completeInput is the operator's typed quantities, validated before use.
type completeInput struct {
	ProductionQty string `validate:"required,numeric"`
	WastageQty    string `validate:"omitempty,numeric"`
}

// parseQuantities validates and converts the typed quantities.
func (s *LifecycleServiceImpl) parseQuantities(cmd primary.CompleteCommand) (production, wastage int64, err error) {
	in := completeInput{
		ProductionQty: strings.TrimSpace(cmd.ProductionQty),
		WastageQty:    strings.TrimSpace(cmd.WastageQty),
	}
	if err := s.validate.Struct(in); err != nil {
		return 0, 0, &ValidationError{Field: "quantities", Message: "quantities must be whole numbers"}
	}

	production, err = strconv.ParseInt(in.ProductionQty, 10, 64)
	if err != nil || production <= 0 {
		return 0, 0, &ValidationError{Field: "production qty", Message: "must be a positive whole number"}
	}
	wastage = 0
	if in.WastageQty != "" {
		wastage, err = strconv.ParseInt(in.WastageQty, 10, 64)
		if err != nil || wastage < 0 {
			return 0, 0, &ValidationError{Field: "wastage qty", Message: "must be zero or a positive whole number"}
		}
	}
	return production, wastage, nil
}

// Complete dispatches a complete-production job with the operator's
// quantities, awaits it, and releases the registry entry on success.
func (s *LifecycleServiceImpl) Complete(ctx context.Context, cmd primary.CompleteCommand) (*primary.OperationResult, error) {
	sess := s.state.Session()
	if sess == nil {
		return nil, ErrNotLoggedIn
	}

	production, wastage, err := s.parseQuantities(cmd)
	if err != nil {
		return nil, err
	}

	id := cmd.Process.Identity()
	productionID, err := s.resolveProductionID(id, cmd.Process)
	if err != nil {
		return nil, err
	}

	guard := process.CanComplete(process.OperationContext{
		Identity:          id,
		OperationInFlight: s.state.OperationInFlight(id),
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}
	if !s.state.BeginOperation(id) {
		return nil, &ValidationError{Field: "process", Message: "another operation is already in progress for this process"}
	}
	defer s.state.EndOperation(id)

	jobID, err := s.gateway.CompleteProcess(ctx, secondary.CompleteRequest{
		UserID:        sess.UserID,
		ProductionID:  productionID,
		ProductionQty: production,
		WastageQty:    wastage,
		Database:      sess.Database,
	})
	if err != nil {
		return nil, err
	}
	return s.finishOperation(ctx, jobID, id, "process completed")
}

// Cancel dispatches a cancel-production job and releases the registry entry
// on success. Confirmation happens before this call.
func (s *LifecycleServiceImpl) Cancel(ctx context.Context, proc process.Record) (*primary.OperationResult, error) {
	sess := s.state.Session()
	if sess == nil {
		return nil, ErrNotLoggedIn
	}

	id := proc.Identity()
	productionID, err := s.resolveProductionID(id, proc)
	if err != nil {
		return nil, err
	}

	guard := process.CanCancel(process.OperationContext{
		Identity:          id,
		OperationInFlight: s.state.OperationInFlight(id),
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}
	if !s.state.BeginOperation(id) {
		return nil, &ValidationError{Field: "process", Message: "another operation is already in progress for this process"}
	}
	defer s.state.EndOperation(id)

	jobID, err := s.gateway.CancelProcess(ctx, secondary.CancelRequest{
		UserID:       sess.UserID,
		ProductionID: productionID,
		Database:     sess.Database,
	})
	if err != nil {
		return nil, err
	}
	return s.finishOperation(ctx, jobID, id, "process cancelled")
}

// finishOperation awaits a complete/cancel job and applies the shared
// outcome rules: failed jobs become errors, warnings suppress all side
// effects, success releases the registry entry and returns to search.
func (s *LifecycleServiceImpl) finishOperation(ctx context.Context, jobID string, id process.Identity, logMsg string) (*primary.OperationResult, error) {
	job, err := s.poller.Await(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == secondary.JobFailed {
		return nil, &OperationFailedError{Message: job.Error}
	}
	if job.Warning != nil {
		return &primary.OperationResult{Warning: &primary.Warning{
			Message:     job.Warning.Message,
			StatusValue: job.Warning.StatusValue,
		}}, nil
	}

	s.state.Registry().Remove(id)
	s.log.WithField("process", id.Key()).Info(logMsg)
	return &primary.OperationResult{ReturnToSearch: true}, nil
}

// resolveProductionID finds the production id for an operation: the local
// registry is authoritative, the server-reported record is the fallback for
// runs started elsewhere.
func (s *LifecycleServiceImpl) resolveProductionID(id process.Identity, proc process.Record) (string, error) {
	if entry, ok := s.state.Registry().Get(id); ok && entry.ProductionID != "" {
		return entry.ProductionID, nil
	}
	if proc.RunningProductionID != "" {
		return proc.RunningProductionID, nil
	}
	return "", ErrProductionIDNotFound
}

// ViewRunning reconciles a server-reported running process into the
// registry and returns the effective entry. A process started by another
// operator session gets a fresh local start time.
func (s *LifecycleServiceImpl) ViewRunning(proc process.Record) (process.RunningEntry, error) {
	id := proc.Identity()
	entry, err := s.state.Registry().Upsert(id, process.RunningEntry{
		StartedAt:    s.clock.Now(),
		ProductionID: proc.RunningProductionID,
		Process:      proc,
	})
	if err != nil {
		s.log.WithField("process", id.Key()).Warn("production id conflict on view, keeping registered id")
	}
	return entry, nil
}
