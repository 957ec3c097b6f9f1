package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/prodline/internal/console"
	"github.com/example/prodline/internal/logging"
	"github.com/example/prodline/internal/wire"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the interactive operator console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := console.New(console.Options{
			Auth:      wire.AuthService(),
			Processes: wire.ProcessService(),
			Lifecycle: wire.LifecycleService(),
			Machines:  wire.MachineService(),
			State:     wire.AppState(),
			Watcher:   wire.SessionWatcher(),
			Poller:    wire.JobPoller(),
			Databases: wire.Config().Databases,
			In:        os.Stdin,
			Out:       os.Stdout,
			Log:       logging.GetLogger(),
		})
		if err := c.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

// ConsoleCmd returns the console command
func ConsoleCmd() *cobra.Command {
	return consoleCmd
}
