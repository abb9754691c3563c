package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jobdeck-dev/jobdeck/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var alias string

	cmd := &cobra.Command{
		Use:   "init <backend-url>",
		Short: "Register a jobdeck backend in this project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], alias)
		},
	}

	cmd.Flags().StringVar(&alias, "alias", "", "Alias for the backend (defaults to the URL)")

	return cmd
}

func runInit(backendURL, alias string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Println("Found existing jobdeck.json")
	} else {
		cfg = &config.Config{Backends: []config.Backend{}}
		isNewConfig = true
	}

	if alias == "" {
		alias = backendURL
	}

	// Don't add duplicates
	for _, backend := range cfg.Backends {
		if backend.URL == backendURL {
			return fmt.Errorf("backend %s is already configured (alias '%s')", backendURL, backend.Alias)
		}
	}

	cfg.Backends = append(cfg.Backends, config.Backend{URL: backendURL, Alias: alias})

	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if isNewConfig {
		fmt.Printf("✓ Created %s\n", config.ConfigFileName)
	}
	fmt.Printf("✓ Added backend %s (%s)\n", alias, backendURL)
	fmt.Println("\nNext: run 'jobdeck login' to authenticate")

	return nil
}
