// Package console implements the interactive operator console: a
// screen-stack driven prompt loop over the application services, with
// cross-instance session watching.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/example/prodline/internal/app"
	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/core/screen"
	"github.com/example/prodline/internal/core/session"
	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/ports/secondary"
	"github.com/example/prodline/internal/version"
)

// Console is one interactive console instance.
type Console struct {
	auth      primary.AuthService
	processes primary.ProcessService
	lifecycle primary.LifecycleService
	machines  primary.MachineService
	state     *app.State
	watcher   secondary.SessionWatcher
	poller    *app.Poller
	databases []string
	log       logrus.FieldLogger

	stack *screen.Stack
	in    *bufio.Scanner
	out   io.Writer

	// view state for the search/process screens
	result  *primary.SearchResult
	page    int
	current process.RunningEntry
}

// Options carries the console's dependencies.
type Options struct {
	Auth      primary.AuthService
	Processes primary.ProcessService
	Lifecycle primary.LifecycleService
	Machines  primary.MachineService
	State     *app.State
	Watcher   secondary.SessionWatcher
	Poller    *app.Poller
	Databases []string
	In        io.Reader
	Out       io.Writer
	Log       logrus.FieldLogger
}

// New creates a console.
func New(opts Options) *Console {
	return &Console{
		auth:      opts.Auth,
		processes: opts.Processes,
		lifecycle: opts.Lifecycle,
		machines:  opts.Machines,
		state:     opts.State,
		watcher:   opts.Watcher,
		poller:    opts.Poller,
		databases: opts.Databases,
		log:       opts.Log,
		stack:     screen.NewStack(),
		in:        bufio.NewScanner(opts.In),
		out:       opts.Out,
		page:      1,
	}
}

// Run drives the console until the operator quits or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, version.String())

	if c.poller != nil {
		c.poller.OnProgress = func(msg string) { fmt.Fprintln(c.out, msg) }
	}

	reactions := c.watchSession(ctx)

	// Boot: restore a stored session and skip the login screen.
	sess, err := c.auth.Restore(ctx)
	switch {
	case err != nil:
		c.log.WithError(err).Warn("session restore failed")
		fmt.Fprintln(c.out, color.New(color.FgYellow).Sprintf("Could not restore session: %v", err))
	case sess != nil:
		fmt.Fprintf(c.out, "Restored session for %s (%s)\n", sess.Username, sess.Database)
		c.stack.Push(screen.Machines)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case reaction := <-reactions:
			c.applyReaction(reaction)
			continue
		default:
		}

		done, err := c.step(ctx)
		if err != nil {
			fmt.Fprintln(c.out, color.New(color.FgRed).Sprintf("✗ %v", err))
		}
		if done {
			return nil
		}
	}
}

// step renders the current screen, reads one command, and dispatches it.
// It returns true when the operator quit.
func (c *Console) step(ctx context.Context) (bool, error) {
	switch c.stack.Current() {
	case screen.Login:
		return c.loginScreen(ctx)
	case screen.Machines:
		return c.machinesScreen(ctx)
	case screen.Search:
		return c.searchScreen(ctx)
	case screen.ProcessList:
		return c.processListScreen(ctx)
	case screen.RunningProcess:
		return c.runningScreen(ctx)
	case screen.RunningMachines:
		return c.boardScreen(ctx)
	default:
		c.stack.Reset()
		return false, nil
	}
}

// prompt reads one trimmed line, returning false on EOF.
func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprintf(c.out, "%s> ", label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// back applies one back navigation with the stack's veto rules.
func (c *Console) back() {
	result := c.stack.Back()
	if !result.Vetoed {
		return
	}
	if result.NeedsConfirm {
		if c.confirm("Leave the running process view? The process keeps running") {
			c.stack.LeaveRunning()
		}
	}
}

// quit asks for confirmation when local running processes are tracked.
func (c *Console) quit() bool {
	if c.state.Registry().Len() > 0 {
		return c.confirm(fmt.Sprintf("%d process(es) still tracked as running. Quit anyway?", c.state.Registry().Len()))
	}
	return true
}

func (c *Console) confirm(prompt string) bool {
	answer, ok := c.prompt(prompt + " [y/N]")
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// watchSession converts store change events into reactions.
func (c *Console) watchSession(ctx context.Context) <-chan session.Reaction {
	reactions := make(chan session.Reaction, 1)
	events := c.watcher.Watch(ctx)
	go func() {
		for ev := range events {
			reaction := session.ReactTo(ev, c.state.SessionID())
			if reaction == session.ReactionNone {
				continue
			}
			select {
			case reactions <- reaction:
			default:
			}
		}
	}()
	return reactions
}

// applyReaction handles a session change made by another console instance.
func (c *Console) applyReaction(reaction session.Reaction) {
	switch reaction {
	case session.ReactionLogout:
		c.auth.Teardown()
		c.resetView()
		fmt.Fprintln(c.out, color.New(color.FgYellow).Sprint("Session was logged out elsewhere."))
	case session.ReactionTeardown:
		c.auth.Teardown()
		c.resetView()
		fmt.Fprintln(c.out, color.New(color.FgYellow).Sprint("Your session was replaced by another login. Press enter to continue."))
		c.in.Scan()
	}
}

func (c *Console) resetView() {
	c.stack.Reset()
	c.result = nil
	c.page = 1
	c.current = process.RunningEntry{}
}

// elapsed formats the run time of the current entry as HH:MM:SS.
func elapsed(entry process.RunningEntry, now time.Time) string {
	d := now.Sub(entry.StartedAt)
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
