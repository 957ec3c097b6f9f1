// Package screen contains the pure navigation logic for the console: which
// screen is current, what back navigation does, and where it is vetoed.
package screen

// Screen is a logical console screen tag.
type Screen string

const (
	Login           Screen = "login"
	Machines        Screen = "machines"
	Search          Screen = "search"
	ProcessList     Screen = "process-list"
	RunningProcess  Screen = "running-process"
	RunningMachines Screen = "running-machines"
)

// BackResult is the outcome of a back request.
type BackResult struct {
	// Target is the screen to show. When Vetoed, it equals the current screen.
	Target Screen
	// Vetoed means the navigation was blocked and the current screen stays.
	Vetoed bool
	// NeedsConfirm means the navigation may proceed, but only after the
	// operator confirms leaving an in-flight production run.
	NeedsConfirm bool
}

// Stack maps logical screens onto a history stack. The entry screen is the
// initial state and is never pushed; every other transition is.
type Stack struct {
	screens []Screen
}

// NewStack starts at the login screen.
func NewStack() *Stack {
	return &Stack{screens: []Screen{Login}}
}

// Current returns the screen on top of the stack.
func (s *Stack) Current() Screen {
	return s.screens[len(s.screens)-1]
}

// Push makes target the current screen. Navigating to the entry screen
// resets the stack instead of growing it.
func (s *Stack) Push(target Screen) {
	if target == Login {
		s.Reset()
		return
	}
	if s.Current() == target {
		return
	}
	s.screens = append(s.screens, target)
}

// Back requests back navigation.
// On the entry screen the request is vetoed outright. On the in-progress
// screen it is vetoed too, but the caller may confirm and then leave via
// LeaveRunning - backing out of an in-flight production run is irreversible
// enough to warrant the extra step.
func (s *Stack) Back() BackResult {
	current := s.Current()

	if current == Login {
		return BackResult{Target: current, Vetoed: true}
	}
	if current == RunningProcess {
		return BackResult{Target: current, Vetoed: true, NeedsConfirm: true}
	}

	s.screens = s.screens[:len(s.screens)-1]
	return BackResult{Target: s.Current()}
}

// LeaveRunning leaves the in-progress screen after the operator confirmed,
// landing on the search screen.
func (s *Stack) LeaveRunning() Screen {
	if s.Current() != RunningProcess {
		return s.Current()
	}
	// Unwind to the search screen, rebuilding the expected path when it is
	// not on the stack.
	for len(s.screens) > 1 {
		s.screens = s.screens[:len(s.screens)-1]
		if s.Current() == Search {
			return s.Current()
		}
	}
	s.screens = []Screen{Login, Machines, Search}
	return s.Current()
}

// Reset drops everything back to the entry screen. Used on logout and on
// forced teardown.
func (s *Stack) Reset() {
	s.screens = []Screen{Login}
}

// Depth returns the stack depth, mainly for tests.
func (s *Stack) Depth() int {
	return len(s.screens)
}
