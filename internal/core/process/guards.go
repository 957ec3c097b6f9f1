package process

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// StartContext provides context for start guards.
type StartContext struct {
	Identity          Identity
	PaperIssuedQty    int64
	CurrentStatus     string
	OperationInFlight bool // an unresolved start/complete/cancel for this identity
}

// OperationContext provides context for complete/cancel guards.
type OperationContext struct {
	Identity          Identity
	OperationInFlight bool
}

// CanStart evaluates whether a process may be started.
// Rules:
//   - the identity must be complete (tracking would be impossible otherwise)
//   - paper must have been issued
//   - the process must not already be running
//   - no other operation for the same identity may be unresolved; a second
//     concurrent start could desynchronize the running-process registry
func CanStart(ctx StartContext) GuardResult {
	if !ctx.Identity.Complete() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("process %s is missing identity fields and cannot be tracked", ctx.Identity.Key()),
		}
	}
	if ctx.PaperIssuedQty <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "paper not issued for this process",
		}
	}
	if isRunningStatus(ctx.CurrentStatus) {
		return GuardResult{
			Allowed: false,
			Reason:  "process is already running - view its status instead of starting it again",
		}
	}
	if ctx.OperationInFlight {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("an operation for process %s is still in progress", ctx.Identity.Key()),
		}
	}
	return GuardResult{Allowed: true}
}

// CanComplete evaluates whether a complete command may be dispatched.
func CanComplete(ctx OperationContext) GuardResult {
	return canOperate(ctx)
}

// CanCancel evaluates whether a cancel command may be dispatched.
func CanCancel(ctx OperationContext) GuardResult {
	return canOperate(ctx)
}

func canOperate(ctx OperationContext) GuardResult {
	if ctx.OperationInFlight {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("an operation for process %s is still in progress", ctx.Identity.Key()),
		}
	}
	return GuardResult{Allowed: true}
}

func isRunningStatus(status string) bool {
	return Record{CurrentStatus: status}.IsRunning()
}
