// Package session holds the client's in-memory authentication state and
// keeps it synchronized with the credential store and the remote backend.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/credstore"
)

var (
	// ErrNotAuthenticated indicates an operation that requires an
	// authenticated session was called without one.
	ErrNotAuthenticated = errors.New("not authenticated")
)

var validate = validator.New()

// Gateway is the slice of the backend API the session manager depends on.
// *api.Client satisfies it; tests supply fakes.
type Gateway interface {
	Login(ctx context.Context, creds api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, userData api.RegisterRequest) (*api.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, accessToken string) (*api.User, error)
}

// State is a snapshot of the session. IsAuthenticated is true only while
// Tokens is non-nil.
type State struct {
	User            *api.User
	Tokens          *api.TokenPair
	IsAuthenticated bool
	IsLoading       bool
	Err             error
}

// Listener receives a state snapshot after every transition, in
// subscription order.
type Listener func(State)

// Manager owns the session state. All transitions go through its methods;
// listeners observe them. Safe for concurrent use.
type Manager struct {
	gateway Gateway
	creds   credstore.Store
	log     zerolog.Logger

	mu        sync.Mutex
	state     State
	listeners []Listener
}

// NewManager creates a session manager over the given gateway and
// credential store.
func NewManager(gateway Gateway, creds credstore.Store, log zerolog.Logger) *Manager {
	return &Manager{
		gateway: gateway,
		creds:   creds,
		log:     log,
	}
}

// Subscribe registers a listener for state transitions. Listeners added
// after a transition do not see it retroactively.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// notifyLocked snapshots state and listeners under the lock; the actual
// dispatch happens in the returned func, which must run after unlocking so
// listeners can call back into the manager.
func (m *Manager) notifyLocked() func() {
	snapshot := m.state
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	return func() {
		for _, l := range listeners {
			l(snapshot)
		}
	}
}

// beginLoading flips IsLoading and clears the previous error.
func (m *Manager) beginLoading() {
	m.mu.Lock()
	m.state.IsLoading = true
	m.state.Err = nil
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
}

// fail records an authentication failure. The session stays unauthenticated.
func (m *Manager) fail(err error) {
	m.mu.Lock()
	m.state.IsLoading = false
	m.state.Err = err
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
}

// completeAuth persists the credentials and transitions to authenticated.
// Persisting happens under the lock so concurrent logins can never leave a
// torn token pair in storage: whichever call holds the lock writes both
// halves together, and the last one to resolve wins.
func (m *Manager) completeAuth(tokens api.TokenPair, user *api.User) {
	m.mu.Lock()
	if err := m.creds.Save(credstore.Credentials{
		Access:  tokens.Access,
		Refresh: tokens.Refresh,
		User:    user,
	}); err != nil {
		m.log.Warn().Err(err).Msg("Failed to persist credentials")
	}

	m.state = State{
		User:            user,
		Tokens:          &tokens,
		IsAuthenticated: true,
	}
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
}

// Login authenticates against the backend. On success the session becomes
// authenticated and the token pair is persisted; on failure the error is
// recorded on the session and returned.
func (m *Manager) Login(ctx context.Context, creds api.LoginRequest) error {
	m.beginLoading()

	resp, err := m.gateway.Login(ctx, creds)
	if err != nil {
		m.fail(err)
		return err
	}

	m.completeAuth(resp.Tokens, &resp.User)
	return nil
}

// Register creates a new account and signs it in. The payload is validated
// locally before the backend is called.
func (m *Manager) Register(ctx context.Context, userData api.RegisterRequest) error {
	if err := validate.Struct(userData); err != nil {
		err = fmt.Errorf("invalid registration data: %w", err)
		m.fail(err)
		return err
	}

	m.beginLoading()

	resp, err := m.gateway.Register(ctx, userData)
	if err != nil {
		m.fail(err)
		return err
	}

	m.completeAuth(resp.Tokens, &resp.User)
	return nil
}

// Logout invalidates the session. The remote call is best-effort: whatever
// it returns, stored credentials are cleared and the session is reset, so
// logout is effective locally even when the backend is unreachable.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	var refresh string
	if m.state.Tokens != nil {
		refresh = m.state.Tokens.Refresh
	}
	m.mu.Unlock()

	// Fall back to the stored pair so logout invalidates remotely even
	// before the session was rehydrated.
	if refresh == "" {
		if stored, err := m.creds.Load(); err == nil {
			refresh = stored.Refresh
		}
	}

	if refresh != "" {
		if err := m.gateway.Logout(ctx, refresh); err != nil {
			m.log.Warn().Err(err).Msg("Remote logout failed, clearing local session anyway")
		}
	}

	m.mu.Lock()
	if err := m.creds.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("Failed to clear stored credentials")
	}
	m.state = State{}
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
}

// RefreshProfile re-fetches the user profile. Failures are logged and the
// session is left untouched; on success the user record is updated and the
// stored credentials re-mirrored.
func (m *Manager) RefreshProfile(ctx context.Context) {
	m.mu.Lock()
	if !m.state.IsAuthenticated || m.state.Tokens == nil {
		m.mu.Unlock()
		m.log.Debug().Msg("Skipping profile refresh: not authenticated")
		return
	}
	tokens := *m.state.Tokens
	m.mu.Unlock()

	user, err := m.gateway.Profile(ctx, tokens.Access)
	if err != nil {
		m.log.Warn().Err(err).Msg("Profile refresh failed")
		return
	}

	m.mu.Lock()
	// The session may have been logged out while the fetch was in flight.
	if !m.state.IsAuthenticated {
		m.mu.Unlock()
		return
	}
	m.state.User = user
	if err := m.creds.Save(credstore.Credentials{
		Access:  tokens.Access,
		Refresh: tokens.Refresh,
		User:    user,
	}); err != nil {
		m.log.Warn().Err(err).Msg("Failed to re-mirror credentials")
	}
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
}

// ClearError resets the session error without touching any other field.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.state.Err = nil
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
}
