package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/cli/userconfig"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, backendAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a jobdeck backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password, backendAlias)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set JOBDECK_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set JOBDECK_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&backendAlias, "backend", "", "Backend alias from jobdeck.json")

	return cmd
}

func runLogin(email, password, backendAlias string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("JOBDECK_EMAIL")
	}
	if password == "" {
		password = os.Getenv("JOBDECK_PASSWORD")
	}

	// Fall back to the email of the last successful sign-in.
	if email == "" {
		if last, err := userconfig.LastLoginEmail(); err == nil && last != "" {
			email = last
			fmt.Printf("Using remembered email %s\n", email)
		}
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or JOBDECK_EMAIL env var)")
	}

	env, err := newSessionEnv(backendAlias, true)
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
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

	fmt.Printf("Logging in to %s (%s)...\n", env.backend.Alias, env.backend.URL)

	if err := env.manager.Login(cmdContext(), api.LoginRequest{Email: email, Password: password}); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := userconfig.RecordLogin(email); err != nil {
		log := logger.GetLogger()
		log.Warn().Err(err).Msg("Failed to remember login email")
	}

	st := env.manager.State()
	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", st.User.FullName(), st.User.Email)
	if st.User.IsAdministrative() {
		fmt.Println("  Role: Admin")
	}

	return nil
}
