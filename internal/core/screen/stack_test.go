package screen

import "testing"

func TestStackStartsAtLogin(t *testing.T) {
	s := NewStack()
	if s.Current() != Login {
		t.Errorf("Current() = %s, want %s", s.Current(), Login)
	}
}

func TestBackWalksHistory(t *testing.T) {
	s := NewStack()
	s.Push(Machines)
	s.Push(Search)
	s.Push(ProcessList)

	result := s.Back()
	if result.Vetoed {
		t.Fatal("Back() from process list vetoed")
	}
	if result.Target != Search {
		t.Errorf("Back() target = %s, want %s", result.Target, Search)
	}

	result = s.Back()
	if result.Target != Machines {
		t.Errorf("Back() target = %s, want %s", result.Target, Machines)
	}
}

func TestBackVetoedOnLogin(t *testing.T) {
	s := NewStack()

	result := s.Back()
	if !result.Vetoed {
		t.Error("Back() on login screen not vetoed")
	}
	if result.NeedsConfirm {
		t.Error("Back() on login screen asked for confirmation")
	}
	if s.Current() != Login {
		t.Errorf("Current() = %s after vetoed back, want %s", s.Current(), Login)
	}
}

func TestBackOnRunningNeedsConfirmation(t *testing.T) {
	s := NewStack()
	s.Push(Machines)
	s.Push(Search)
	s.Push(ProcessList)
	s.Push(RunningProcess)

	result := s.Back()
	if !result.Vetoed || !result.NeedsConfirm {
		t.Fatalf("Back() on running screen = %+v, want vetoed with confirmation", result)
	}
	if s.Current() != RunningProcess {
		t.Errorf("Current() = %s after vetoed back, want %s", s.Current(), RunningProcess)
	}

	if got := s.LeaveRunning(); got != Search {
		t.Errorf("LeaveRunning() = %s, want %s", got, Search)
	}
}

func TestPushLoginResets(t *testing.T) {
	s := NewStack()
	s.Push(Machines)
	s.Push(Search)

	s.Push(Login)
	if s.Current() != Login || s.Depth() != 1 {
		t.Errorf("after Push(Login): current=%s depth=%d, want login depth 1", s.Current(), s.Depth())
	}
}

func TestPushSameScreenDoesNotGrow(t *testing.T) {
	s := NewStack()
	s.Push(Machines)
	s.Push(Machines)
	if s.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", s.Depth())
	}
}
