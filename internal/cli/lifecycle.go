package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/wire"
)

var startCmd = &cobra.Command{
	Use:   "start [job-card-number] [form-number]",
	Short: "Start a production run for a process",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sess, err := requireSession(ctx)
		if err != nil {
			return err
		}
		machineFlag, _ := cmd.Flags().GetString("machine")
		machineID, err := resolveMachine(sess, machineFlag)
		if err != nil {
			return err
		}
		wire.AppState().SelectMachine(machineID)

		proc, err := findProcess(ctx, args[0], args[1], machineID)
		if err != nil {
			return err
		}

		wire.JobPoller().OnProgress = func(msg string) { fmt.Println(msg) }
		result, err := wire.LifecycleService().Start(ctx, proc, machineID)
		if err != nil {
			return fmt.Errorf("start failed: %w", err)
		}
		if result.Warning != nil {
			printWarning(result.Warning)
			return nil
		}

		fmt.Printf("✓ Started %s (production %s) on %s\n",
			proc.ProcessName, result.Entry.ProductionID, machineID)
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete [job-card-number] [form-number]",
	Short: "Complete a running production with quantities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sess, err := requireSession(ctx)
		if err != nil {
			return err
		}
		machineFlag, _ := cmd.Flags().GetString("machine")
		qty, _ := cmd.Flags().GetString("qty")
		wastage, _ := cmd.Flags().GetString("wastage")

		machineID, err := resolveMachine(sess, machineFlag)
		if err != nil {
			return err
		}
		wire.AppState().SelectMachine(machineID)

		proc, err := findProcess(ctx, args[0], args[1], machineID)
		if err != nil {
			return err
		}
		if err := trackRunning(proc); err != nil {
			return err
		}

		wire.JobPoller().OnProgress = func(msg string) { fmt.Println(msg) }
		result, err := wire.LifecycleService().Complete(ctx, primary.CompleteCommand{
			Process:       proc,
			ProductionQty: qty,
			WastageQty:    wastage,
		})
		if err != nil {
			return fmt.Errorf("complete failed: %w", err)
		}
		if result.Warning != nil {
			printWarning(result.Warning)
			return nil
		}

		fmt.Printf("✓ Completed %s (qty %s, wastage %s)\n", proc.ProcessName, qty, wastage)
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [job-card-number] [form-number]",
	Short: "Cancel a running production",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sess, err := requireSession(ctx)
		if err != nil {
			return err
		}
		machineFlag, _ := cmd.Flags().GetString("machine")
		yes, _ := cmd.Flags().GetBool("yes")

		machineID, err := resolveMachine(sess, machineFlag)
		if err != nil {
			return err
		}
		wire.AppState().SelectMachine(machineID)

		proc, err := findProcess(ctx, args[0], args[1], machineID)
		if err != nil {
			return err
		}
		if err := trackRunning(proc); err != nil {
			return err
		}

		if !yes && !confirm(fmt.Sprintf("Cancel production of %s?", proc.ProcessName)) {
			fmt.Println("Aborted.")
			return nil
		}

		wire.JobPoller().OnProgress = func(msg string) { fmt.Println(msg) }
		result, err := wire.LifecycleService().Cancel(ctx, proc)
		if err != nil {
			return fmt.Errorf("cancel failed: %w", err)
		}
		if result.Warning != nil {
			printWarning(result.Warning)
			return nil
		}

		fmt.Printf("✓ Cancelled %s\n", proc.ProcessName)
		return nil
	},
}

// trackRunning ensures the process is actually running and reconciles it
// into the local registry so the production id can be resolved.
func trackRunning(proc process.Record) error {
	if !proc.IsRunning() {
		return fmt.Errorf("process %s is not running", proc.ProcessName)
	}
	_, err := wire.LifecycleService().ViewRunning(proc)
	return err
}

func init() {
	startCmd.Flags().StringP("machine", "m", "", "Machine ID")

	completeCmd.Flags().StringP("machine", "m", "", "Machine ID")
	completeCmd.Flags().StringP("qty", "q", "", "Produced quantity")
	completeCmd.Flags().StringP("wastage", "w", "", "Wastage quantity")
	completeCmd.MarkFlagRequired("qty")

	cancelCmd.Flags().StringP("machine", "m", "", "Machine ID")
	cancelCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
}

// StartCmd returns the start command
func StartCmd() *cobra.Command {
	return startCmd
}

// CompleteCmd returns the complete command
func CompleteCmd() *cobra.Command {
	return completeCmd
}

// CancelCmd returns the cancel command
func CancelCmd() *cobra.Command {
	return cancelCmd
}
