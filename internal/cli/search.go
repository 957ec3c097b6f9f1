package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/wire"
)

var searchCmd = &cobra.Command{
	Use:   "search [job-card-number]",
	Short: "Search pending processes for a job card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sess, err := requireSession(ctx)
		if err != nil {
			return err
		}

		machineFlag, _ := cmd.Flags().GetString("machine")
		manual, _ := cmd.Flags().GetBool("manual")
		page, _ := cmd.Flags().GetInt("page")

		machineID, err := resolveMachine(sess, machineFlag)
		if err != nil {
			return err
		}
		wire.AppState().SelectMachine(machineID)

		result, err := wire.ProcessService().Search(ctx, primary.SearchRequest{
			MachineID:   machineID,
			JobCardNo:   args[0],
			ManualEntry: manual,
		})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(result.Running) == 0 && len(result.Pending) == 0 {
			fmt.Printf("No processes found for job card %s.\n", result.JobCardNo)
			return nil
		}

		if len(result.Running) > 0 {
			fmt.Printf("Running (%d):\n", len(result.Running))
			for _, rec := range result.Running {
				printProcess(rec)
			}
		}
		if len(result.Pending) > 0 {
			pages := (len(result.Pending) + pageSize - 1) / pageSize
			if page < 1 || page > pages {
				page = 1
			}
			start := (page - 1) * pageSize
			window := process.Page(result.Pending[start:], pageSize)

			fmt.Printf("Pending (%d, page %d/%d):\n", len(result.Pending), page, pages)
			for _, rec := range window {
				printProcess(rec)
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringP("machine", "m", "", "Machine ID")
	searchCmd.Flags().Bool("manual", false, "Manual job card entry")
	searchCmd.Flags().Int("page", 1, "Page of pending processes")
}

// SearchCmd returns the search command
func SearchCmd() *cobra.Command {
	return searchCmd
}
