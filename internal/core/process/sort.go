package process

import (
	"sort"
	"time"
)

// pwoDateLayouts are the date shapes the backend has been observed to emit
// for the PWO date field.
var pwoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

func parsePWODate(s string) (time.Time, bool) {
	for _, layout := range pwoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Split separates a fetched process list into running and pending queues.
// Running is decided by trimmed, case-insensitive comparison against
// "running"; everything else counts as pending.
func Split(records []Record) (running, pending []Record) {
	for _, r := range records {
		if r.IsRunning() {
			running = append(running, r)
		} else {
			pending = append(pending, r)
		}
	}
	return running, pending
}

// SortPending orders pending processes ascending by PWO date, oldest work
// first. The sort is stable: records whose date does not parse compare equal
// to everything and keep their relative input order.
func SortPending(pending []Record) {
	sort.SliceStable(pending, func(i, j int) bool {
		di, oki := parsePWODate(pending[i].PWODate)
		dj, okj := parsePWODate(pending[j].PWODate)
		if !oki || !okj {
			return false
		}
		return di.Before(dj)
	})
}

// Page returns the first n records, or all of them when fewer exist.
// The console shows pending processes ten at a time.
func Page(records []Record, n int) []Record {
	if n >= len(records) {
		return records
	}
	return records[:n]
}
