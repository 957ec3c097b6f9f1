package process

import "testing"

func TestSplit(t *testing.T) {
	records := []Record{
		{ProcessName: "Printing", CurrentStatus: "Running"},
		{ProcessName: "Cutting", CurrentStatus: "pending"},
		{ProcessName: "Folding", CurrentStatus: " RUNNING "},
		{ProcessName: "Binding", CurrentStatus: ""},
	}

	running, pending := Split(records)
	if len(running) != 2 {
		t.Fatalf("running count = %d, want 2", len(running))
	}
	if len(pending) != 2 {
		t.Fatalf("pending count = %d, want 2", len(pending))
	}
	if running[0].ProcessName != "Printing" || running[1].ProcessName != "Folding" {
		t.Errorf("running order = %s, %s", running[0].ProcessName, running[1].ProcessName)
	}
}

func TestSortPendingAscendingByPWODate(t *testing.T) {
	pending := []Record{
		{ProcessName: "C", PWODate: "2026-03-01"},
		{ProcessName: "A", PWODate: "2026-01-15"},
		{ProcessName: "B", PWODate: "2026-02-01"},
	}

	SortPending(pending)

	want := []string{"A", "B", "C"}
	for i, name := range want {
		if pending[i].ProcessName != name {
			t.Errorf("pending[%d] = %s, want %s", i, pending[i].ProcessName, name)
		}
	}
}

func TestSortPendingUnparseableDatesKeepInputOrder(t *testing.T) {
	pending := []Record{
		{ProcessName: "X", PWODate: "not a date"},
		{ProcessName: "Y", PWODate: ""},
		{ProcessName: "Z", PWODate: "also bad"},
	}

	SortPending(pending)

	want := []string{"X", "Y", "Z"}
	for i, name := range want {
		if pending[i].ProcessName != name {
			t.Errorf("pending[%d] = %s, want %s (stable no-op)", i, pending[i].ProcessName, name)
		}
	}
}

func TestPage(t *testing.T) {
	records := make([]Record, 25)
	for i := range records {
		records[i] = Record{ProcessID: string(rune('a' + i))}
	}

	if got := Page(records, 10); len(got) != 10 {
		t.Errorf("Page(25, 10) = %d records, want 10", len(got))
	}
	if got := Page(records, 30); len(got) != 25 {
		t.Errorf("Page(25, 30) = %d records, want 25", len(got))
	}
}
