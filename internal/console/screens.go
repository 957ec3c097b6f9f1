package console

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/core/screen"
	"github.com/example/prodline/internal/ports/primary"
)

// pageSize is how many pending processes are shown per page.
const pageSize = 10

func (c *Console) loginScreen(ctx context.Context) (bool, error) {
	username, ok := c.prompt("username (or 'quit')")
	if !ok {
		return true, nil
	}
	switch username {
	case "":
		return false, nil
	case "quit", "exit":
		return c.quit(), nil
	}

	database := ""
	if len(c.databases) == 1 {
		database = c.databases[0]
	} else {
		for i, db := range c.databases {
			fmt.Fprintf(c.out, "  %d. %s\n", i+1, db)
		}
		pick, ok := c.prompt("database")
		if !ok {
			return true, nil
		}
		if n, err := strconv.Atoi(pick); err == nil && n >= 1 && n <= len(c.databases) {
			database = c.databases[n-1]
		} else {
			database = pick
		}
	}

	sess, err := c.auth.Login(ctx, primary.LoginRequest{Username: username, Database: database})
	if err != nil {
		return false, err
	}
	fmt.Fprintf(c.out, "✓ Logged in as %s (%s)\n", sess.Username, sess.Database)
	c.stack.Push(screen.Machines)
	return false, nil
}

func (c *Console) machinesScreen(ctx context.Context) (bool, error) {
	sess := c.state.Session()
	if sess == nil {
		c.resetView()
		return false, nil
	}

	fmt.Fprintln(c.out, "Machines:")
	for i, m := range sess.Machines {
		fmt.Fprintf(c.out, "  %d. %-6s %s\n", i+1, m.ID, m.Name)
	}
	input, ok := c.prompt("machine # ('board', 'logout', 'back', 'quit')")
	if !ok {
		return true, nil
	}

	switch input {
	case "":
		return false, nil
	case "quit", "exit":
		return c.quit(), nil
	case "back":
		c.back()
		return false, nil
	case "board":
		c.stack.Push(screen.RunningMachines)
		return false, nil
	case "logout":
		if err := c.auth.Logout(ctx); err != nil {
			return false, err
		}
		c.resetView()
		fmt.Fprintln(c.out, "✓ Logged out")
		return false, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(sess.Machines) {
		return false, fmt.Errorf("pick a machine between 1 and %d", len(sess.Machines))
	}
	c.state.SelectMachine(sess.Machines[n-1].ID)
	fmt.Fprintf(c.out, "✓ Machine %s selected\n", sess.Machines[n-1].ID)
	c.stack.Push(screen.Search)
	return false, nil
}

func (c *Console) searchScreen(ctx context.Context) (bool, error) {
	input, ok := c.prompt("job card # ('back', 'quit')")
	if !ok {
		return true, nil
	}
	switch input {
	case "":
		return false, nil
	case "quit", "exit":
		return c.quit(), nil
	case "back":
		c.back()
		return false, nil
	}

	// Typed input is the manual-entry path; scanners feed the one-shot
	// search command instead.
	result, err := c.processes.Search(ctx, primary.SearchRequest{JobCardNo: input, ManualEntry: true})
	if err != nil {
		return false, err
	}
	c.result = result
	c.page = 1
	c.stack.Push(screen.ProcessList)
	return false, nil
}

func (c *Console) processListScreen(ctx context.Context) (bool, error) {
	if c.result == nil {
		c.back()
		return false, nil
	}

	c.renderProcessList()
	input, ok := c.prompt("form # ('n'/'p' page, 'back', 'quit')")
	if !ok {
		return true, nil
	}
	switch input {
	case "":
		return false, nil
	case "quit", "exit":
		return c.quit(), nil
	case "back":
		c.back()
		return false, nil
	case "n":
		if c.page*pageSize < len(c.result.Pending) {
			c.page++
		}
		return false, nil
	case "p":
		if c.page > 1 {
			c.page--
		}
		return false, nil
	}

	proc, found := c.findByForm(input)
	if !found {
		return false, fmt.Errorf("no process with form %s in this list", input)
	}

	if proc.IsRunning() {
		entry, err := c.lifecycle.ViewRunning(proc)
		if err != nil {
			return false, err
		}
		c.current = entry
		c.stack.Push(screen.RunningProcess)
		return false, nil
	}

	if !c.confirm(fmt.Sprintf("Start %s?", proc.ProcessName)) {
		return false, nil
	}
	result, err := c.lifecycle.Start(ctx, proc, c.state.SelectedMachine())
	if err != nil {
		return false, err
	}
	if result.Warning != nil {
		c.printWarning(result.Warning)
		return false, nil
	}
	c.current = result.Entry
	c.stack.Push(screen.RunningProcess)
	return false, nil
}

func (c *Console) renderProcessList() {
	if len(c.result.Running) > 0 {
		fmt.Fprintf(c.out, "Running (%d):\n", len(c.result.Running))
		for _, rec := range c.result.Running {
			c.renderProcess(rec)
		}
	}
	if len(c.result.Pending) == 0 {
		return
	}
	pages := (len(c.result.Pending) + pageSize - 1) / pageSize
	if c.page > pages {
		c.page = pages
	}
	start := (c.page - 1) * pageSize
	window := process.Page(c.result.Pending[start:], pageSize)

	fmt.Fprintf(c.out, "Pending (%d, page %d/%d):\n", len(c.result.Pending), c.page, pages)
	for _, rec := range window {
		c.renderProcess(rec)
	}
}

func (c *Console) renderProcess(rec process.Record) {
	status := rec.CurrentStatus
	if rec.IsRunning() {
		status = color.New(color.FgHiGreen).Sprint("RUNNING")
	}
	paper := ""
	if !rec.PaperIssued() {
		paper = color.New(color.FgYellow).Sprint(" [paper not issued]")
	}
	fmt.Fprintf(c.out, "  %-8s %-24s %-14s qty %d/%d  %s%s\n",
		process.FormNumber(rec.FormNo),
		rec.ProcessName,
		rec.PWONo,
		rec.QtyProduced, rec.ScheduleQty,
		status, paper,
	)
}

// findByForm locates a listed process by full form number or its trailing
// numeric part.
func (c *Console) findByForm(formNo string) (process.Record, bool) {
	all := append(append([]process.Record{}, c.result.Running...), c.result.Pending...)
	for _, rec := range all {
		if rec.FormNo == formNo || process.FormNumber(rec.FormNo) == formNo {
			return rec, true
		}
	}
	return process.Record{}, false
}

func (c *Console) runningScreen(ctx context.Context) (bool, error) {
	entry := c.current
	fmt.Fprintf(c.out, "%s  production %s  running %s\n",
		entry.Process.ProcessName, entry.ProductionID, elapsed(entry, time.Now()))

	input, ok := c.prompt("'complete', 'cancel', 'back', 'quit'")
	if !ok {
		return true, nil
	}
	switch input {
	case "":
		return false, nil
	case "quit", "exit":
		return c.quit(), nil
	case "back":
		c.back()
		return false, nil
	case "complete":
		return false, c.completeCurrent(ctx)
	case "cancel":
		if !c.confirm(fmt.Sprintf("Cancel production of %s?", entry.Process.ProcessName)) {
			return false, nil
		}
		result, err := c.lifecycle.Cancel(ctx, entry.Process)
		if err != nil {
			return false, err
		}
		c.applyOperationResult(result, "✓ Cancelled")
		return false, nil
	}
	return false, fmt.Errorf("unknown command %q", input)
}

func (c *Console) completeCurrent(ctx context.Context) error {
	qty, ok := c.prompt("produced qty")
	if !ok {
		return nil
	}
	wastage, ok := c.prompt("wastage qty (empty for 0)")
	if !ok {
		return nil
	}

	result, err := c.lifecycle.Complete(ctx, primary.CompleteCommand{
		Process:       c.current.Process,
		ProductionQty: qty,
		WastageQty:    wastage,
	})
	if err != nil {
		return err
	}
	c.applyOperationResult(result, "✓ Completed")
	return nil
}

// applyOperationResult routes a finished operation: warnings stay on the
// running screen, success unwinds to search.
func (c *Console) applyOperationResult(result *primary.OperationResult, successMsg string) {
	if result.Warning != nil {
		c.printWarning(result.Warning)
		return
	}
	if result.ReturnToSearch {
		fmt.Fprintf(c.out, "%s %s\n", successMsg, c.current.Process.ProcessName)
		c.current = process.RunningEntry{}
		c.stack.LeaveRunning()
	}
}

// printWarning shows a backend status warning with both the message and
// the raw status value.
func (c *Console) printWarning(w *primary.Warning) {
	yellow := color.New(color.FgYellow)
	fmt.Fprintln(c.out, yellow.Sprintf("⚠ Status Warning: %s", w.Message))
	fmt.Fprintln(c.out, yellow.Sprintf("  Status: %s", w.StatusValue))
}

func (c *Console) boardScreen(ctx context.Context) (bool, error) {
	board, err := c.machines.RunningBoard(ctx)
	if err != nil {
		c.back()
		return false, err
	}
	if len(board) == 0 {
		fmt.Fprintln(c.out, "No machines running.")
	}
	sess := c.state.Session()
	for _, s := range board {
		name := s.MachineName
		if sess != nil && sess.HasMachine(s.MachineID) {
			name = color.New(color.FgHiGreen).Sprint(name)
		}
		fmt.Fprintf(c.out, "  %-6s %-20s %-20s %-14s since %s\n",
			s.MachineID, name, s.JobName, s.Process, s.LastUpdated)
	}

	input, ok := c.prompt("'r' refresh, 'back', 'quit'")
	if !ok {
		return true, nil
	}
	switch input {
	case "quit", "exit":
		return c.quit(), nil
	case "back":
		c.back()
	}
	return false, nil
}
