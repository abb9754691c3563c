package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var backendAlias string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(backendAlias)
		},
	}

	cmd.Flags().StringVar(&backendAlias, "backend", "", "Backend alias from jobdeck.json")

	return cmd
}

func runWhoami(backendAlias string) error {
	env, err := newSessionEnv(backendAlias, false)
	if err != nil {
		return err
	}

	if err := env.requireAuth(); err != nil {
		return err
	}

	st := env.manager.State()
	fmt.Printf("User:  %s\n", st.User.FullName())
	fmt.Printf("Email: %s\n", st.User.Email)
	fmt.Printf("Type:  %s\n", st.User.UserType)
	if st.User.IsAdministrative() {
		fmt.Println("Role:  Admin")
	}

	return nil
}
