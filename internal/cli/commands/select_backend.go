package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobdeck-dev/jobdeck/internal/cli/backendselect"
	"github.com/jobdeck-dev/jobdeck/internal/cli/config"
	"github.com/jobdeck-dev/jobdeck/internal/cli/userconfig"
)

// NewSelectBackendCmd creates the select-backend command
func NewSelectBackendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select-backend",
		Short: "Choose which backend subsequent commands talk to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectBackend()
		},
	}
}

func runSelectBackend() error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'jobdeck init' to create a configuration file", err)
	}

	backend, err := backendselect.PromptBackendSelection(cfg)
	if err != nil {
		return err
	}

	if err := userconfig.SetSelectedBackend(backend.URL); err != nil {
		return fmt.Errorf("failed to save selected backend: %w", err)
	}

	fmt.Printf("✓ Selected backend %s (%s)\n", backend.Alias, backend.URL)
	return nil
}
