package process

import "fmt"

// Identity is the composite key that identifies one physical unit of work.
// A job card commonly carries several processes with the same name, so
// lookups must always go through the full three-field identity, never the
// process name.
type Identity struct {
	ProcessID            string
	JobBookingContentsID string
	FormNo               string
}

// Identity derives the composite key for this record.
func (r Record) Identity() Identity {
	return Identity{
		ProcessID:            r.ProcessID,
		JobBookingContentsID: r.JobBookingContentsID,
		FormNo:               r.FormNo,
	}
}

// Key returns the identity as a single string, used for logging and display.
func (id Identity) Key() string {
	return fmt.Sprintf("%s_%s_%s", id.ProcessID, id.JobBookingContentsID, id.FormNo)
}

// Complete reports whether all three identity fields are present. Records
// missing any of them cannot be tracked.
func (id Identity) Complete() bool {
	return id.ProcessID != "" && id.JobBookingContentsID != "" && id.FormNo != ""
}
