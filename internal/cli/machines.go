package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/prodline/internal/wire"
)

var machinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "List the machines assigned to you",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sess, err := requireSession(ctx)
		if err != nil {
			return err
		}

		if len(sess.Machines) == 0 {
			fmt.Println("No machines assigned.")
			return nil
		}
		for _, m := range sess.Machines {
			fmt.Printf("  %-6s %s\n", m.ID, m.Name)
		}
		return nil
	},
}

var machinesRunningCmd = &cobra.Command{
	Use:   "running",
	Short: "Show the running-machines board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if _, err := requireSession(ctx); err != nil {
			return err
		}

		board, err := wire.MachineService().RunningBoard(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch machine status: %w", err)
		}
		if len(board) == 0 {
			fmt.Println("No machines running.")
			return nil
		}

		sess := wire.AppState().Session()
		for _, s := range board {
			name := s.MachineName
			if sess != nil && sess.HasMachine(s.MachineID) {
				name = color.New(color.FgHiGreen).Sprint(name)
			}
			fmt.Printf("  %-6s %-20s %-20s %-14s since %s\n",
				s.MachineID, name, truncate(s.JobName, 20), truncate(s.Process, 14), s.LastUpdated)
		}
		return nil
	},
}

func init() {
	machinesCmd.AddCommand(machinesRunningCmd)
}

// MachinesCmd returns the machines command
func MachinesCmd() *cobra.Command {
	return machinesCmd
}
