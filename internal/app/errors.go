package app

import (
	"errors"
	"fmt"
)

// ErrNotLoggedIn is returned by operations that need a current session.
var ErrNotLoggedIn = errors.New("not logged in")

// ErrMissingProductionID means a completed start job came back without a
// production id, leaving nothing to complete or cancel against.
var ErrMissingProductionID = errors.New("backend did not return a production id")

// ErrProductionIDNotFound means neither the local registry nor the server
// record carries a production id for the process being completed/cancelled.
var ErrProductionIDNotFound = errors.New("no production id known for this process")

// ValidationError is a rejected operator input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// JobTimeoutError means the async job did not reach a terminal state within
// the poll budget. The backend may still finish it later.
type JobTimeoutError struct {
	JobID string
}

func (e *JobTimeoutError) Error() string {
	return fmt.Sprintf("job %s did not finish in time - check the process list before retrying", e.JobID)
}

// OperationFailedError carries the backend's failure message for a job that
// reached the failed state. The message is shown to the operator verbatim.
type OperationFailedError struct {
	Message string
}

func (e *OperationFailedError) Error() string {
	if e.Message == "" {
		return "operation failed"
	}
	return e.Message
}
