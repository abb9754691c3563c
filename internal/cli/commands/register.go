package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jobdeck-dev/jobdeck/internal/api"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var email, password, firstName, lastName, backendAlias string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new jobdeck account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(email, password, firstName, lastName, backendAlias)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set JOBDECK_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set JOBDECK_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&backendAlias, "backend", "", "Backend alias from jobdeck.json")

	return cmd
}

func runRegister(email, password, firstName, lastName, backendAlias string) error {
	if email == "" {
		email = os.Getenv("JOBDECK_EMAIL")
	}
	if password == "" {
		password = os.Getenv("JOBDECK_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or JOBDECK_EMAIL env var)")
	}
	if firstName == "" || lastName == "" {
		return fmt.Errorf("first and last name are required (use --first-name and --last-name flags)")
	}

	env, err := newSessionEnv(backendAlias, true)
	if err != nil {
		return err
	}

	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or JOBDECK_PASSWORD env var)")
		}
	}

	fmt.Printf("Creating account on %s (%s)...\n", env.backend.Alias, env.backend.URL)

	userData := api.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := env.manager.Register(cmdContext(), userData); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	st := env.manager.State()
	fmt.Println("✓ Account created!")
	fmt.Printf("  User: %s (%s)\n", st.User.FullName(), st.User.Email)

	return nil
}
