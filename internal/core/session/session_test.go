package session

import (
	"strings"
	"testing"
	"time"
)

func TestNewID(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	id := NewID(now)
	if !strings.HasPrefix(id, "1788084000000_") {
		t.Errorf("NewID() = %q, want prefix %q", id, "1788084000000_")
	}

	if NewID(now) == NewID(now) {
		t.Error("two ids generated at the same instant collided")
	}
}

func TestReactTo(t *testing.T) {
	tests := []struct {
		name  string
		ev    ChangeEvent
		ownID string
		want  Reaction
	}{
		{
			name:  "unrelated key",
			ev:    ChangeEvent{Key: "something_else", NewValue: "x"},
			ownID: "a",
			want:  ReactionNone,
		},
		{
			name:  "session cleared elsewhere",
			ev:    ChangeEvent{Key: SessionIDKey, OldValue: "a", NewValue: ""},
			ownID: "a",
			want:  ReactionLogout,
		},
		{
			name:  "replaced by foreign login",
			ev:    ChangeEvent{Key: SessionIDKey, OldValue: "a", NewValue: "b"},
			ownID: "a",
			want:  ReactionTeardown,
		},
		{
			name:  "own write observed",
			ev:    ChangeEvent{Key: SessionIDKey, OldValue: "", NewValue: "a"},
			ownID: "a",
			want:  ReactionNone,
		},
		{
			name:  "no local session yet",
			ev:    ChangeEvent{Key: SessionIDKey, OldValue: "", NewValue: "b"},
			ownID: "",
			want:  ReactionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReactTo(tt.ev, tt.ownID); got != tt.want {
				t.Errorf("ReactTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMachineByID(t *testing.T) {
	s := &Session{Machines: []Machine{{ID: "1", Name: "M1"}, {ID: "2", Name: "M2"}}}

	if m, ok := s.MachineByID("2"); !ok || m.Name != "M2" {
		t.Errorf("MachineByID(2) = %v, %v", m, ok)
	}
	if s.HasMachine("3") {
		t.Error("HasMachine(3) = true, want false")
	}
}
