package process

import "testing"

func TestCanStart(t *testing.T) {
	id := Identity{ProcessID: "12", JobBookingContentsID: "900", FormNo: "F_3"}

	tests := []struct {
		name        string
		ctx         StartContext
		wantAllowed bool
	}{
		{
			name:        "pending process with paper issued",
			ctx:         StartContext{Identity: id, PaperIssuedQty: 500, CurrentStatus: "pending"},
			wantAllowed: true,
		},
		{
			name:        "paper not issued",
			ctx:         StartContext{Identity: id, PaperIssuedQty: 0, CurrentStatus: "pending"},
			wantAllowed: false,
		},
		{
			name:        "already running",
			ctx:         StartContext{Identity: id, PaperIssuedQty: 500, CurrentStatus: "Running"},
			wantAllowed: false,
		},
		{
			name:        "operation in flight for same identity",
			ctx:         StartContext{Identity: id, PaperIssuedQty: 500, CurrentStatus: "pending", OperationInFlight: true},
			wantAllowed: false,
		},
		{
			name:        "incomplete identity",
			ctx:         StartContext{Identity: Identity{ProcessID: "12"}, PaperIssuedQty: 500},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanStart(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanStart() Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
			if err := result.Error(); (err == nil) != tt.wantAllowed {
				t.Errorf("CanStart().Error() = %v, want nil: %v", err, tt.wantAllowed)
			}
		})
	}
}

func TestCanCompleteAndCancelBlockWhileInFlight(t *testing.T) {
	id := Identity{ProcessID: "12", JobBookingContentsID: "900", FormNo: "F_3"}

	if r := CanComplete(OperationContext{Identity: id}); !r.Allowed {
		t.Errorf("CanComplete() blocked with nothing in flight: %s", r.Reason)
	}
	if r := CanComplete(OperationContext{Identity: id, OperationInFlight: true}); r.Allowed {
		t.Error("CanComplete() allowed while an operation is in flight")
	}
	if r := CanCancel(OperationContext{Identity: id, OperationInFlight: true}); r.Allowed {
		t.Error("CanCancel() allowed while an operation is in flight")
	}
}
