package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/prodline/internal/core/machine"
)

func TestRunningBoardFiltersAndOrders(t *testing.T) {
	gw := &mockGateway{machineStatuses: []machine.Status{
		{MachineID: "M9", MachineName: "Cutter", EmployeeID: "8", MachineStatus: "Running", LastUpdated: "2026-03-01 08:00:00"},
		{MachineID: "M1", MachineName: "Press 1", EmployeeID: "3", MachineStatus: "Running", LastUpdated: "2026-03-01 09:00:00"},
		{MachineID: "M2", MachineName: "Idle One", MachineStatus: "Idle"},
	}}
	svc := NewMachineService(gw, loggedInState())

	board, err := svc.RunningBoard(context.Background())
	if err != nil {
		t.Fatalf("RunningBoard failed: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("board size: got %d", len(board))
	}
	// The operator's own running machine leads even with a later update.
	if board[0].MachineID != "M1" || board[1].MachineID != "M9" {
		t.Errorf("order: got %s, %s", board[0].MachineID, board[1].MachineID)
	}
}

func TestRunningBoardRequiresSession(t *testing.T) {
	svc := NewMachineService(&mockGateway{}, NewState())

	_, err := svc.RunningBoard(context.Background())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("want ErrNotLoggedIn, got %v", err)
	}
}
