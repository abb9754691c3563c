package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var backendAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(backendAlias)
		},
	}

	cmd.Flags().StringVar(&backendAlias, "backend", "", "Backend alias from jobdeck.json")

	return cmd
}

func runLogout(backendAlias string) error {
	env, err := newSessionEnv(backendAlias, false)
	if err != nil {
		return err
	}

	// Logout is guaranteed effective locally: the remote invalidation is
	// best-effort and local clearing never depends on it.
	env.manager.Logout(cmdContext())

	fmt.Println("✓ Logged out")
	return nil
}
