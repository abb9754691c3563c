// Package userconfig keeps per-user CLI state under ~/.config/jobdeck:
// which backend the user last selected and the email they last signed in
// with. It is distinct from the project config (jobdeck.json, shared via
// version control) and from the credential store (secrets).
package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig is the persisted per-user CLI state.
type UserConfig struct {
	SelectedBackendURL string `json:"selected_backend_url,omitempty"`
	LastLoginEmail     string `json:"last_login_email,omitempty"`
}

// Path returns the location of the user config file.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "jobdeck", "config.json"), nil
}

// Load reads the user config. A missing file yields an empty config.
func Load() (*UserConfig, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &UserConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &cfg, nil
}

// Update loads the config, applies mutate, and writes it back. The write
// goes through a temp file and rename so concurrent commands never observe
// a half-written file.
func Update(mutate func(*UserConfig)) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	mutate(cfg)

	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace user config: %w", err)
	}

	return nil
}

// SetSelectedBackend records which backend subsequent commands talk to.
func SetSelectedBackend(backendURL string) error {
	return Update(func(c *UserConfig) {
		c.SelectedBackendURL = backendURL
	})
}

// GetSelectedBackend returns the selected backend URL, or empty when unset.
func GetSelectedBackend() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	return cfg.SelectedBackendURL, nil
}

// RecordLogin remembers the email of a successful sign-in so the next
// `jobdeck login` can default to it.
func RecordLogin(email string) error {
	return Update(func(c *UserConfig) {
		c.LastLoginEmail = email
	})
}

// LastLoginEmail returns the most recently recorded sign-in email, or
// empty when none is known.
func LastLoginEmail() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	return cfg.LastLoginEmail, nil
}
