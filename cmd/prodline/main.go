package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/prodline/internal/cli"
	"github.com/example/prodline/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "prodline",
		Short:   "prodline - operator console for production job tracking",
		Version: version.String(),
		Long: `prodline is the shop-floor operator console for the production
job-tracking backend. Operators log in, pick a machine, search job cards,
and start, complete or cancel production runs.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.MachinesCmd())
	rootCmd.AddCommand(cli.SearchCmd())
	rootCmd.AddCommand(cli.StartCmd())
	rootCmd.AddCommand(cli.CompleteCmd())
	rootCmd.AddCommand(cli.CancelCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.ConsoleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
