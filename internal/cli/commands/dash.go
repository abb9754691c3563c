package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobdeck-dev/jobdeck/internal/redirect"
)

// NewDashCmd creates the dash command
func NewDashCmd() *cobra.Command {
	var backendAlias string
	var admin bool

	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the job board in the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDash(backendAlias, admin)
		},
	}

	cmd.Flags().StringVar(&backendAlias, "backend", "", "Backend alias from jobdeck.json")
	cmd.Flags().BoolVar(&admin, "admin", false, "Open the admin landing view")

	return cmd
}

func runDash(backendAlias string, admin bool) error {
	backend, err := getSelectedBackend(backendAlias)
	if err != nil {
		return err
	}

	url := backend.URL
	if admin {
		url = backend.AdminLandingURL()
	}

	fmt.Printf("Opening %s (%s)...\n", backend.Alias, url)

	nav := redirect.BrowserNavigator{}
	if err := nav.Open(url); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, url)
	}

	return nil
}
