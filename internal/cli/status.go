package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/prodline/internal/version"
	"github.com/example/prodline/internal/wire"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session and console configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		fmt.Println(version.String())
		fmt.Printf("Backend: %s\n", wire.Config().APIBaseURL)

		sess, err := wire.AuthService().Restore(ctx)
		if err != nil {
			return err
		}
		if sess == nil {
			fmt.Println("Session: not logged in")
			return nil
		}
		fmt.Printf("Session: %s on %s (%d machine(s))\n", sess.Username, sess.Database, len(sess.Machines))
		return nil
	},
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return statusCmd
}
