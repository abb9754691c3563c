package credstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/jobdeck-dev/jobdeck/internal/api"
)

const (
	service = "jobdeck-cli"

	accessKey  = "access_token"
	refreshKey = "refresh_token"
	userKey    = "user"
)

// KeyringStore persists credentials in the OS keychain/credential manager,
// one entry per key, scoped to a backend URL.
type KeyringStore struct {
	backendURL string
}

// NewKeyringStore creates a keyring-backed store for the given backend
func NewKeyringStore(backendURL string) *KeyringStore {
	return &KeyringStore{backendURL: backendURL}
}

// key returns a unique keyring key per backend
func (s *KeyringStore) key(name string) string {
	return fmt.Sprintf("%s-%s", name, s.backendURL)
}

// Save persists the token pair and user record in the OS keychain
func (s *KeyringStore) Save(creds Credentials) error {
	if err := keyring.Set(service, s.key(accessKey), creds.Access); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}
	if err := keyring.Set(service, s.key(refreshKey), creds.Refresh); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}

	if creds.User != nil {
		userData, err := json.Marshal(creds.User)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		if err := keyring.Set(service, s.key(userKey), string(userData)); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
	}

	return nil
}

// Load retrieves the stored credentials from the OS keychain
func (s *KeyringStore) Load() (*Credentials, error) {
	access, err := keyring.Get(service, s.key(accessKey))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoCredentials
		}
		return nil, fmt.Errorf("failed to load access token: %w", err)
	}

	refresh, err := keyring.Get(service, s.key(refreshKey))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoCredentials
		}
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}

	creds := &Credentials{Access: access, Refresh: refresh}

	// The user record is optional; a missing or corrupt entry is not fatal
	// because the bootstrap profile fetch re-populates it.
	if userData, err := keyring.Get(service, s.key(userKey)); err == nil {
		var user api.User
		if err := json.Unmarshal([]byte(userData), &user); err == nil {
			creds.User = &user
		}
	}

	return creds, nil
}

// Clear removes all stored credentials from the OS keychain
func (s *KeyringStore) Clear() error {
	for _, name := range []string{accessKey, refreshKey, userKey} {
		if err := keyring.Delete(service, s.key(name)); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				continue
			}
			return fmt.Errorf("failed to delete %s: %w", name, err)
		}
	}
	return nil
}
