package app

import (
	"context"

	"github.com/example/prodline/internal/core/machine"
	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/ports/secondary"
)

// MachineServiceImpl implements the MachineService interface.
type MachineServiceImpl struct {
	gateway secondary.Gateway
	state   *State
}

// NewMachineService creates a new MachineService with injected dependencies.
func NewMachineService(gateway secondary.Gateway, state *State) *MachineServiceImpl {
	return &MachineServiceImpl{gateway: gateway, state: state}
}

var _ primary.MachineService = (*MachineServiceImpl)(nil)

// RunningBoard fetches the latest machine statuses and arranges the board:
// only running machines, the operator's own viewable ones first, then by
// last update ascending.
func (s *MachineServiceImpl) RunningBoard(ctx context.Context) ([]machine.Status, error) {
	sess := s.state.Session()
	if sess == nil {
		return nil, ErrNotLoggedIn
	}

	statuses, err := s.gateway.LatestMachineStatus(ctx, sess.Database)
	if err != nil {
		return nil, err
	}
	return machine.Board(statuses, sess), nil
}
