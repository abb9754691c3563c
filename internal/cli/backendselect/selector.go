package backendselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/jobdeck-dev/jobdeck/internal/cli/config"
	"github.com/jobdeck-dev/jobdeck/internal/cli/userconfig"
)

// ResolveBackend determines which backend to use based on the following priority:
// 1. If backendAlias is provided, use that backend
// 2. If user has a selected backend in their local config, use that
// 3. If only one backend in project config, use that
// 4. Otherwise, prompt user to select a backend interactively
func ResolveBackend(projectConfig *config.Config, backendAlias string) (*config.Backend, error) {
	// Priority 1: Use backend alias if provided
	if backendAlias != "" {
		backend, err := projectConfig.GetBackendByAlias(backendAlias)
		if err != nil {
			return nil, err
		}
		return backend, nil
	}

	// Priority 2: Use selected backend from user config
	selectedURL, err := userconfig.GetSelectedBackend()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selectedURL != "" {
		backend, err := getBackendByURL(projectConfig, selectedURL)
		if err != nil {
			// Selected backend no longer exists in project config, clear it and continue
			_ = userconfig.SetSelectedBackend("")
		} else {
			return backend, nil
		}
	}

	// Priority 3: If only one backend, use it automatically
	if len(projectConfig.Backends) == 1 {
		backend := &projectConfig.Backends[0]
		if err := userconfig.SetSelectedBackend(backend.URL); err != nil {
			fmt.Printf("Warning: failed to save selected backend: %v\n", err)
		}
		return backend, nil
	}

	// Priority 4: Prompt user to select a backend
	backend, err := PromptBackendSelection(projectConfig)
	if err != nil {
		return nil, err
	}

	if err := userconfig.SetSelectedBackend(backend.URL); err != nil {
		fmt.Printf("Warning: failed to save selected backend: %v\n", err)
	}

	return backend, nil
}

// PromptBackendSelection shows an interactive prompt for the user to select a backend
func PromptBackendSelection(projectConfig *config.Config) (*config.Backend, error) {
	if len(projectConfig.Backends) == 0 {
		return nil, fmt.Errorf("no backends configured in jobdeck.json")
	}

	labels := make([]string, len(projectConfig.Backends))
	for i, backend := range projectConfig.Backends {
		labels[i] = fmt.Sprintf("%s (%s)", backend.Alias, backend.URL)
	}

	prompt := promptui.Select{
		Label: "Select a backend",
		Items: labels,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend selection cancelled: %w", err)
	}

	return &projectConfig.Backends[index], nil
}

func getBackendByURL(projectConfig *config.Config, url string) (*config.Backend, error) {
	for i := range projectConfig.Backends {
		if projectConfig.Backends[i].URL == url {
			return &projectConfig.Backends[i], nil
		}
	}
	return nil, fmt.Errorf("backend with URL '%s' not found", url)
}
