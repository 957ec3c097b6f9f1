package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/wire"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and store the operator session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		database, _ := cmd.Flags().GetString("database")
		if database == "" {
			databases := wire.Config().Databases
			if len(databases) != 1 {
				return fmt.Errorf("no database selected\nHint: pass --database or configure exactly one")
			}
			database = databases[0]
		}

		sess, err := wire.AuthService().Login(ctx, primary.LoginRequest{
			Username: args[0],
			Database: database,
		})
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Printf("✓ Logged in as %s (%s)\n", sess.Username, sess.Database)
		if len(sess.Machines) == 0 {
			fmt.Println("  No machines assigned.")
			return nil
		}
		fmt.Printf("  %d machine(s) assigned:\n", len(sess.Machines))
		for _, m := range sess.Machines {
			fmt.Printf("    %-6s %s\n", m.ID, m.Name)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored operator session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.AuthService().Logout(context.Background()); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		fmt.Println("✓ Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("database", "d", "", "Target database")
}

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	return loginCmd
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return logoutCmd
}
