package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/prodline/internal/ports/secondary"
)

// Progress messages shown while a job is being polled.
const (
	msgWaiting    = "Waiting to process..."
	msgProcessing = "Processing... Please wait..."
)

// Poller awaits a server-side async job until it reaches a terminal state.
// Individual poll failures are tolerated: a flaky read must not abort an
// operation the backend is still executing.
type Poller struct {
	gateway     secondary.Gateway
	clock       secondary.Clock
	interval    time.Duration
	maxAttempts int
	log         logrus.FieldLogger

	// OnProgress, when set, receives a human-readable progress message on
	// every poll.
	OnProgress func(message string)
}

// NewPoller creates a poller with the given budget.
func NewPoller(gateway secondary.Gateway, clock secondary.Clock, interval time.Duration, maxAttempts int, log logrus.FieldLogger) *Poller {
	return &Poller{
		gateway:     gateway,
		clock:       clock,
		interval:    interval,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Await polls until the job is terminal, the budget is exhausted, or ctx is
// cancelled. Exhaustion yields JobTimeoutError.
func (p *Poller) Await(ctx context.Context, jobID string) (*secondary.Job, error) {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		job, err := p.gateway.JobStatus(ctx, jobID)
		if err != nil {
			p.log.WithError(err).WithField("jobId", jobID).Debug("job poll failed")
		} else {
			p.progress(job.Status)
			if job.Terminal() {
				return job, nil
			}
		}

		// No point sleeping after the final attempt.
		if attempt == p.maxAttempts {
			break
		}
		if err := p.clock.Sleep(ctx, p.interval); err != nil {
			return nil, err
		}
	}
	return nil, &JobTimeoutError{JobID: jobID}
}

// progress reports a message for the two in-flight statuses. Anything else,
// including statuses this client does not know, stays silent; polling itself
// is unaffected.
func (p *Poller) progress(status string) {
	if p.OnProgress == nil {
		return
	}
	switch status {
	case secondary.JobPending:
		p.OnProgress(msgWaiting)
	case secondary.JobProcessing:
		p.OnProgress(msgProcessing)
	}
}
