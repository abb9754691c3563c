// Package credstore persists the session's token pair (and user record)
// across process restarts. The keyring store is the default; a file store
// exists for headless environments and an in-memory store for tests.
package credstore

import (
	"errors"
	"os"

	"github.com/jobdeck-dev/jobdeck/internal/api"
)

// ErrNoCredentials indicates no credentials are stored for the backend.
var ErrNoCredentials = errors.New("no stored credentials")

// Credentials is the durable copy of the session's token pair plus the
// user record captured at the time the pair was issued.
type Credentials struct {
	Access  string    `json:"access_token"`
	Refresh string    `json:"refresh_token"`
	User    *api.User `json:"user,omitempty"`
}

// Store defines the interface for credential storage operations.
// This allows us to swap the keyring out in tests and headless environments.
type Store interface {
	// Save replaces the stored credentials with the given set.
	Save(creds Credentials) error
	// Load returns the stored credentials, or ErrNoCredentials.
	Load() (*Credentials, error)
	// Clear removes the stored credentials. Clearing an empty store is a no-op.
	Clear() error
}

// Open returns the credential store for the given backend URL: the file
// store when JOBDECK_CRED_FILE is set, the OS keyring otherwise.
func Open(backendURL string) Store {
	if path := os.Getenv("JOBDECK_CRED_FILE"); path != "" {
		return NewFileStore(path)
	}
	return NewKeyringStore(backendURL)
}
