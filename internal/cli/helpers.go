// Package cli contains the cobra commands for the prodline console.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/core/session"
	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/wire"
)

// pageSize is how many pending processes are shown per page.
const pageSize = 10

// requireSession restores the persisted session for a one-shot command.
func requireSession(ctx context.Context) (*session.Session, error) {
	sess, err := wire.AuthService().Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("not logged in\nHint: run 'prodline login <username>' first")
	}
	return sess, nil
}

// resolveMachine applies the --machine flag or falls back to the operator's
// only machine.
func resolveMachine(sess *session.Session, flag string) (string, error) {
	if flag != "" {
		if !sess.HasMachine(flag) {
			return "", fmt.Errorf("machine %s is not assigned to you", flag)
		}
		return flag, nil
	}
	if len(sess.Machines) == 1 {
		return sess.Machines[0].ID, nil
	}
	return "", fmt.Errorf("multiple machines assigned\nHint: pick one with --machine")
}

// findProcess searches a job card and locates one process by its form
// number, matching either the full form or its trailing numeric part.
func findProcess(ctx context.Context, jobCardNo, formNo, machineID string) (process.Record, error) {
	result, err := wire.ProcessService().Search(ctx, primary.SearchRequest{
		MachineID: machineID,
		JobCardNo: jobCardNo,
	})
	if err != nil {
		return process.Record{}, err
	}

	all := append(append([]process.Record{}, result.Running...), result.Pending...)
	for _, rec := range all {
		if rec.FormNo == formNo || process.FormNumber(rec.FormNo) == formNo {
			return rec, nil
		}
	}
	return process.Record{}, fmt.Errorf("no process with form %s on job card %s", formNo, jobCardNo)
}

// printProcess renders one process line.
func printProcess(rec process.Record) {
	status := rec.CurrentStatus
	if rec.IsRunning() {
		status = color.New(color.FgHiGreen).Sprint("RUNNING")
	}
	paper := ""
	if !rec.PaperIssued() {
		paper = color.New(color.FgYellow).Sprint(" [paper not issued]")
	}
	fmt.Printf("  %-8s %-24s %-14s qty %d/%d  %s%s\n",
		process.FormNumber(rec.FormNo),
		truncate(rec.ProcessName, 24),
		rec.PWONo,
		rec.QtyProduced, rec.ScheduleQty,
		status, paper,
	)
}

// printWarning renders a suppressed-side-effect warning. Both the message
// and the raw status value come through verbatim from the backend.
func printWarning(w *primary.Warning) {
	yellow := color.New(color.FgYellow)
	fmt.Println(yellow.Sprintf("⚠ Status Warning: %s", w.Message))
	fmt.Println(yellow.Sprintf("  Status: %s", w.StatusValue))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
