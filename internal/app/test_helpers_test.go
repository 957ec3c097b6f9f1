package app

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/prodline/internal/core/machine"
	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/core/session"
	"github.com/example/prodline/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockGateway implements secondary.Gateway for testing.
type mockGateway struct {
	loginResult *secondary.LoginResult
	loginErr    error

	pendingRecords []process.Record
	pendingErr     error
	lastQuery      secondary.PendingQuery

	startJobID   string
	startErr     error
	lastStartReq secondary.StartRequest

	completeJobID   string
	completeErr     error
	lastCompleteReq secondary.CompleteRequest

	cancelJobID   string
	cancelErr     error
	lastCancelReq secondary.CancelRequest

	// jobs are returned in order, one per JobStatus call; the last one
	// repeats once the list is exhausted.
	jobs      []*secondary.Job
	jobErrs   []error
	jobCalls  int
	statusErr error

	machineStatuses []machine.Status
	machineErr      error
}

func (m *mockGateway) Login(ctx context.Context, username, database string) (*secondary.LoginResult, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResult, nil
}

func (m *mockGateway) PendingProcesses(ctx context.Context, q secondary.PendingQuery) ([]process.Record, error) {
	m.lastQuery = q
	if m.pendingErr != nil {
		return nil, m.pendingErr
	}
	return m.pendingRecords, nil
}

func (m *mockGateway) StartProcess(ctx context.Context, req secondary.StartRequest) (string, error) {
	m.lastStartReq = req
	if m.startErr != nil {
		return "", m.startErr
	}
	return m.startJobID, nil
}

func (m *mockGateway) CompleteProcess(ctx context.Context, req secondary.CompleteRequest) (string, error) {
	m.lastCompleteReq = req
	if m.completeErr != nil {
		return "", m.completeErr
	}
	return m.completeJobID, nil
}

func (m *mockGateway) CancelProcess(ctx context.Context, req secondary.CancelRequest) (string, error) {
	m.lastCancelReq = req
	if m.cancelErr != nil {
		return "", m.cancelErr
	}
	return m.cancelJobID, nil
}

func (m *mockGateway) JobStatus(ctx context.Context, jobID string) (*secondary.Job, error) {
	i := m.jobCalls
	m.jobCalls++
	if i < len(m.jobErrs) && m.jobErrs[i] != nil {
		return nil, m.jobErrs[i]
	}
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	if len(m.jobs) == 0 {
		return &secondary.Job{Status: secondary.JobPending}, nil
	}
	if i >= len(m.jobs) {
		i = len(m.jobs) - 1
	}
	return m.jobs[i], nil
}

func (m *mockGateway) LatestMachineStatus(ctx context.Context, database string) ([]machine.Status, error) {
	if m.machineErr != nil {
		return nil, m.machineErr
	}
	return m.machineStatuses, nil
}

// mockSessionStore implements secondary.SessionStore in memory.
type mockSessionStore struct {
	session   *session.Session
	sessionID string
	saveErr   error
	loadErr   error
	clearErr  error
}

func (m *mockSessionStore) Save(ctx context.Context, s *session.Session, sessionID string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.session = s
	m.sessionID = sessionID
	return nil
}

func (m *mockSessionStore) Load(ctx context.Context) (*session.Session, string, error) {
	if m.loadErr != nil {
		return nil, "", m.loadErr
	}
	return m.session, m.sessionID, nil
}

func (m *mockSessionStore) Clear(ctx context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.session = nil
	m.sessionID = ""
	return nil
}

func (m *mockSessionStore) SessionID(ctx context.Context) (string, error) {
	return m.sessionID, nil
}

// mockClock implements secondary.Clock without waiting.
type mockClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time { return c.now }

func (c *mockClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func loggedInState() *State {
	state := NewState()
	state.SetSession(&session.Session{
		Username: "alice",
		UserID:   7,
		LedgerID: 3,
		Database: "plant1",
		Machines: []session.Machine{{ID: "M1", Name: "Press 1"}},
	}, "100_abcdefghi")
	state.SelectMachine("M1")
	return state
}

func testProcess() process.Record {
	return process.Record{
		ProcessID:            "10",
		JobBookingContentsID: "55",
		FormNo:               "JC_2024_0113",
		ProcessName:          "Printing",
		PWODate:              "2026-03-01",
		ScheduleQty:          1000,
		PaperIssuedQty:       1200,
	}
}

func processEntry() process.RunningEntry {
	return process.RunningEntry{
		StartedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		ProductionID: "501",
		Process:      testProcess(),
	}
}

func testPoller(gw *mockGateway, clock *mockClock) *Poller {
	return NewPoller(gw, clock, 10*time.Millisecond, 5, testLogger())
}
