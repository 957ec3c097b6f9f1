package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/example/prodline/internal/core/machine"
	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/core/session"
)

// The backend emits PascalCase and camelCase field variants interchangeably,
// numbers as strings, and a couple of misspelled keys. Everything is unified
// here; canonical records leave this package.

// flexString accepts a JSON string or number and yields a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexInt accepts a JSON number or a numeric string and yields an int64.
// Anything unparseable counts as zero rather than failing the whole record.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexInt(int64(v))
		return nil
	}
	*f = 0
	return nil
}

// machineWire is one machine in a login response. encoding/json matches keys
// case-insensitively, so a single tag covers MachineID and machineId.
type machineWire struct {
	MachineID   flexString `json:"machineId"`
	MachineName string     `json:"machineName"`
}

func (w machineWire) toMachine() session.Machine {
	return session.Machine{ID: string(w.MachineID), Name: w.MachineName}
}

// processWire is one process record in a pending-process response. All
// observed variants of these keys differ only by case, so struct tags are
// enough here.
type processWire struct {
	ProcessID            flexString `json:"processId"`
	JobBookingContentsID flexString `json:"jobBookingJobCardContentsId"`
	FormNo               string     `json:"formNo"`
	ProcessName          string     `json:"processName"`
	Client               string     `json:"client"`
	JobName              string     `json:"jobName"`
	ComponentName        string     `json:"componentName"`
	PWONo                string     `json:"pwoNo"`
	PWODate              string     `json:"pwoDate"`
	ScheduleQty          flexInt    `json:"scheduleQty"`
	QtyProduced          flexInt    `json:"qtyProduced"`
	PaperIssuedQty       flexInt    `json:"paperIssuedQty"`
	CurrentStatus        string     `json:"currentStatus"`
	RunningProductionID  flexString `json:"runningProductionId"`
	RunningMachineID     flexString `json:"runningMachineId"`
}

func (w processWire) toRecord() process.Record {
	return process.Record{
		ProcessID:            string(w.ProcessID),
		JobBookingContentsID: string(w.JobBookingContentsID),
		FormNo:               w.FormNo,
		ProcessName:          w.ProcessName,
		Client:               w.Client,
		JobName:              w.JobName,
		ComponentName:        w.ComponentName,
		PWONo:                w.PWONo,
		PWODate:              w.PWODate,
		ScheduleQty:          int64(w.ScheduleQty),
		QtyProduced:          int64(w.QtyProduced),
		PaperIssuedQty:       int64(w.PaperIssuedQty),
		CurrentStatus:        w.CurrentStatus,
		RunningProductionID:  string(w.RunningProductionID),
		RunningMachineID:     string(w.RunningMachineID),
	}
}

// machineStatusWire is one entry in a machine-status response. This endpoint
// carries keys that differ beyond casing ("MachineNmae", "LastUpadted",
// "Job Name"), so it is normalized by explicit key lookup.
type machineStatusWire struct {
	MachineID     string
	MachineName   string
	EmployeeID    string
	MachineStatus string
	JobName       string
	JobNumber     string
	Process       string
	LastUpdated   string
}

func (w *machineStatusWire) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.MachineID = pickString(raw, "MachineID")
	w.MachineName = pickString(raw, "MachineNmae", "MachineName")
	w.EmployeeID = pickString(raw, "EmployeeID")
	w.MachineStatus = pickString(raw, "MachineStatus")
	w.JobName = pickString(raw, "Job Name", "JobName")
	w.JobNumber = pickString(raw, "Jobnumber", "JobNumber")
	w.Process = pickString(raw, "Process")
	w.LastUpdated = pickString(raw, "LastUpadted", "LastUpdated")
	return nil
}

// pickString returns the first present key, trying exact matches first and
// then case-insensitive ones.
func pickString(raw map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			return flexStringOf(v)
		}
	}
	for _, key := range keys {
		for k, v := range raw {
			if strings.EqualFold(k, key) {
				return flexStringOf(v)
			}
		}
	}
	return ""
}

func flexStringOf(data json.RawMessage) string {
	var f flexString
	if err := f.UnmarshalJSON(data); err != nil {
		return ""
	}
	return string(f)
}

func (w machineStatusWire) toStatus() machine.Status {
	return machine.Status{
		MachineID:     w.MachineID,
		MachineName:   w.MachineName,
		EmployeeID:    w.EmployeeID,
		MachineStatus: w.MachineStatus,
		JobName:       w.JobName,
		JobNumber:     w.JobNumber,
		Process:       w.Process,
		LastUpdated:   w.LastUpdated,
	}
}

// statusWarningWire mirrors the statusWarning payload on a completed job.
type statusWarningWire struct {
	Message     string     `json:"message"`
	StatusValue flexString `json:"statusValue"`
}

// jobWire is the job object inside a job-status response.
type jobWire struct {
	Status       string             `json:"status"`
	ProductionID flexString         `json:"productionId"`
	Error        string             `json:"error"`
	Warning      *statusWarningWire `json:"statusWarning"`
}
