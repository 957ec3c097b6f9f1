package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/ports/secondary"
)

func newLifecycle(gw *mockGateway, state *State) *LifecycleServiceImpl {
	clock := newMockClock()
	return NewLifecycleService(gw, clock, testPoller(gw, clock), state, testLogger())
}

func TestStartRegistersRunningEntry(t *testing.T) {
	gw := &mockGateway{
		startJobID: "job-1",
		jobs:       []*secondary.Job{{Status: secondary.JobCompleted, ProductionID: "501"}},
	}
	state := loggedInState()
	svc := newLifecycle(gw, state)

	result, err := svc.Start(context.Background(), testProcess(), "M1")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if result.Entry.ProductionID != "501" {
		t.Errorf("production id: got %q", result.Entry.ProductionID)
	}

	entry, ok := state.Registry().Get(testProcess().Identity())
	if !ok || entry.ProductionID != "501" {
		t.Errorf("registry entry: got %+v ok=%v", entry, ok)
	}
	if gw.lastStartReq.EmployeeID != 3 || gw.lastStartReq.JobCardFormNo != "JC_2024_0113" {
		t.Errorf("start request: got %+v", gw.lastStartReq)
	}
}

func TestStartGuards(t *testing.T) {
	state := loggedInState()
	svc := newLifecycle(&mockGateway{}, state)
	ctx := context.Background()

	t.Run("paper not issued", func(t *testing.T) {
		proc := testProcess()
		proc.PaperIssuedQty = 0
		if _, err := svc.Start(ctx, proc, "M1"); err == nil {
			t.Error("unissued paper must block start")
		}
	})

	t.Run("already running", func(t *testing.T) {
		proc := testProcess()
		proc.CurrentStatus = "Running"
		if _, err := svc.Start(ctx, proc, "M1"); err == nil {
			t.Error("running process must block start")
		}
	})

	t.Run("incomplete identity", func(t *testing.T) {
		proc := testProcess()
		proc.FormNo = ""
		if _, err := svc.Start(ctx, proc, "M1"); err == nil {
			t.Error("incomplete identity must block start")
		}
	})

	t.Run("foreign machine", func(t *testing.T) {
		if _, err := svc.Start(ctx, testProcess(), "M9"); err == nil {
			t.Error("foreign machine must block start")
		}
	})
}

func TestStartFailedJobSurfacesServerMessage(t *testing.T) {
	gw := &mockGateway{
		startJobID: "job-1",
		jobs:       []*secondary.Job{{Status: secondary.JobFailed, Error: "machine already occupied"}},
	}
	svc := newLifecycle(gw, loggedInState())

	_, err := svc.Start(context.Background(), testProcess(), "M1")
	var opErr *OperationFailedError
	if !errors.As(err, &opErr) {
		t.Fatalf("want OperationFailedError, got %T (%v)", err, err)
	}
	if opErr.Error() != "machine already occupied" {
		t.Errorf("message: got %q", opErr.Error())
	}
}

func TestStartWarningSuppressesRegistration(t *testing.T) {
	gw := &mockGateway{
		startJobID: "job-1",
		jobs: []*secondary.Job{{
			Status:  secondary.JobCompleted,
			Warning: &secondary.StatusWarning{Message: "Stock low", StatusValue: "X"},
		}},
	}
	state := loggedInState()
	svc := newLifecycle(gw, state)

	result, err := svc.Start(context.Background(), testProcess(), "M1")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if result.Warning == nil || result.Warning.Message != "Stock low" {
		t.Fatalf("warning: got %+v", result.Warning)
	}
	if state.Registry().Len() != 0 {
		t.Error("warning outcome must not register a running entry")
	}
}

func TestStartWithoutProductionID(t *testing.T) {
	gw := &mockGateway{
		startJobID: "job-1",
		jobs:       []*secondary.Job{{Status: secondary.JobCompleted}},
	}
	svc := newLifecycle(gw, loggedInState())

	_, err := svc.Start(context.Background(), testProcess(), "M1")
	if !errors.Is(err, ErrMissingProductionID) {
		t.Fatalf("want ErrMissingProductionID, got %v", err)
	}
}

func TestCompleteReleasesRegistryEntry(t *testing.T) {
	gw := &mockGateway{
		completeJobID: "job-2",
		jobs:          []*secondary.Job{{Status: secondary.JobCompleted}},
	}
	state := loggedInState()
	state.Registry().Upsert(testProcess().Identity(), processEntry())
	svc := newLifecycle(gw, state)

	result, err := svc.Complete(context.Background(), primary.CompleteCommand{
		Process:       testProcess(),
		ProductionQty: "900",
		WastageQty:    "20",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !result.ReturnToSearch {
		t.Error("successful completion must return to search")
	}
	if state.Registry().Len() != 0 {
		t.Error("registry entry not released")
	}
	if gw.lastCompleteReq.ProductionID != "501" || gw.lastCompleteReq.ProductionQty != 900 || gw.lastCompleteReq.WastageQty != 20 {
		t.Errorf("complete request: got %+v", gw.lastCompleteReq)
	}
}

func TestCompleteQuantityValidation(t *testing.T) {
	state := loggedInState()
	state.Registry().Upsert(testProcess().Identity(), processEntry())
	svc := newLifecycle(&mockGateway{}, state)
	ctx := context.Background()

	tests := []struct {
		name       string
		production string
		wastage    string
	}{
		{"empty production", "", ""},
		{"non-numeric production", "abc", ""},
		{"zero production", "0", ""},
		{"negative production", "-5", ""},
		{"non-numeric wastage", "100", "x"},
		{"negative wastage", "100", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Complete(ctx, primary.CompleteCommand{
				Process:       testProcess(),
				ProductionQty: tt.production,
				WastageQty:    tt.wastage,
			})
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("want ValidationError, got %T (%v)", err, err)
			}
		})
	}
}

func TestCompleteOmittedWastageDefaultsToZero(t *testing.T) {
	gw := &mockGateway{
		completeJobID: "job-2",
		jobs:          []*secondary.Job{{Status: secondary.JobCompleted}},
	}
	state := loggedInState()
	state.Registry().Upsert(testProcess().Identity(), processEntry())
	svc := newLifecycle(gw, state)

	if _, err := svc.Complete(context.Background(), primary.CompleteCommand{
		Process:       testProcess(),
		ProductionQty: "900",
	}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if gw.lastCompleteReq.WastageQty != 0 {
		t.Errorf("wastage: got %d", gw.lastCompleteReq.WastageQty)
	}
}

func TestCompleteFallsBackToServerProductionID(t *testing.T) {
	gw := &mockGateway{
		completeJobID: "job-2",
		jobs:          []*secondary.Job{{Status: secondary.JobCompleted}},
	}
	svc := newLifecycle(gw, loggedInState())

	proc := testProcess()
	proc.RunningProductionID = "777"
	if _, err := svc.Complete(context.Background(), primary.CompleteCommand{
		Process:       proc,
		ProductionQty: "900",
	}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if gw.lastCompleteReq.ProductionID != "777" {
		t.Errorf("production id: got %q", gw.lastCompleteReq.ProductionID)
	}
}

func TestCompleteWithoutAnyProductionID(t *testing.T) {
	svc := newLifecycle(&mockGateway{}, loggedInState())

	_, err := svc.Complete(context.Background(), primary.CompleteCommand{
		Process:       testProcess(),
		ProductionQty: "900",
	})
	if !errors.Is(err, ErrProductionIDNotFound) {
		t.Fatalf("want ErrProductionIDNotFound, got %v", err)
	}
}

func TestCompleteWarningKeepsRegistryEntry(t *testing.T) {
	gw := &mockGateway{
		completeJobID: "job-2",
		jobs: []*secondary.Job{{
			Status:  secondary.JobCompleted,
			Warning: &secondary.StatusWarning{Message: "Quantity exceeds schedule"},
		}},
	}
	state := loggedInState()
	state.Registry().Upsert(testProcess().Identity(), processEntry())
	svc := newLifecycle(gw, state)

	result, err := svc.Complete(context.Background(), primary.CompleteCommand{
		Process:       testProcess(),
		ProductionQty: "9000",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if result.Warning == nil || result.ReturnToSearch {
		t.Fatalf("result: got %+v", result)
	}
	if state.Registry().Len() != 1 {
		t.Error("warning outcome must keep the registry entry")
	}
}

func TestCancelReleasesRegistryEntry(t *testing.T) {
	gw := &mockGateway{
		cancelJobID: "job-3",
		jobs:        []*secondary.Job{{Status: secondary.JobCompleted}},
	}
	state := loggedInState()
	state.Registry().Upsert(testProcess().Identity(), processEntry())
	svc := newLifecycle(gw, state)

	result, err := svc.Cancel(context.Background(), testProcess())
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if !result.ReturnToSearch {
		t.Error("successful cancellation must return to search")
	}
	if state.Registry().Len() != 0 {
		t.Error("registry entry not released")
	}
	if gw.lastCancelReq.ProductionID != "501" {
		t.Errorf("cancel request: got %+v", gw.lastCancelReq)
	}
}

func TestViewRunningMergesServerState(t *testing.T) {
	state := loggedInState()
	svc := newLifecycle(&mockGateway{}, state)

	proc := testProcess()
	proc.CurrentStatus = "Running"
	proc.RunningProductionID = "888"

	entry, err := svc.ViewRunning(proc)
	if err != nil {
		t.Fatalf("ViewRunning failed: %v", err)
	}
	if entry.ProductionID != "888" {
		t.Errorf("production id: got %q", entry.ProductionID)
	}

	// A second view keeps the original start time and production id.
	again, err := svc.ViewRunning(proc)
	if err != nil {
		t.Fatalf("second ViewRunning failed: %v", err)
	}
	if !again.StartedAt.Equal(entry.StartedAt) || again.ProductionID != "888" {
		t.Errorf("merge: got %+v", again)
	}
}

func TestViewRunningKeepsLocalProductionIDOnConflict(t *testing.T) {
	state := loggedInState()
	state.Registry().Upsert(testProcess().Identity(), processEntry())
	svc := newLifecycle(&mockGateway{}, state)

	proc := testProcess()
	proc.RunningProductionID = "999"

	entry, err := svc.ViewRunning(proc)
	if err != nil {
		t.Fatalf("ViewRunning failed: %v", err)
	}
	if entry.ProductionID != "501" {
		t.Errorf("first registered id must win: got %q", entry.ProductionID)
	}
}

func TestLifecycleRequiresSession(t *testing.T) {
	svc := newLifecycle(&mockGateway{}, NewState())
	ctx := context.Background()

	if _, err := svc.Start(ctx, testProcess(), "M1"); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Start: got %v", err)
	}
	if _, err := svc.Complete(ctx, primary.CompleteCommand{Process: testProcess(), ProductionQty: "1"}); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Complete: got %v", err)
	}
	if _, err := svc.Cancel(ctx, testProcess()); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Cancel: got %v", err)
	}
}
