package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/credstore"
)

// Bootstrap rehydrates the session from stored credentials. It runs the
// single storage-to-store path: load the stored token pair, validate it
// with one profile fetch, and transition to authenticated on success.
// A failed validation clears the stored credentials.
//
// Re-entry while a load is in flight, or after the session is already
// authenticated, is a no-op, so repeated evaluation never duplicates the
// profile fetch.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	if m.state.IsAuthenticated || m.state.IsLoading {
		m.mu.Unlock()
		return nil
	}
	m.state.IsLoading = true
	m.state.Err = nil
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()

	stored, err := m.creds.Load()
	if err != nil {
		m.mu.Lock()
		m.state.IsLoading = false
		notify := m.notifyLocked()
		m.mu.Unlock()
		notify()
		if errors.Is(err, credstore.ErrNoCredentials) {
			return nil
		}
		return fmt.Errorf("failed to load stored credentials: %w", err)
	}

	if expired, ok := tokenExpired(stored.Access); ok && expired {
		// The server is the authority on token validity; the fetch below
		// still runs and decides.
		m.log.Debug().Msg("Stored access token looks expired, validating anyway")
	}

	user, err := m.gateway.Profile(ctx, stored.Access)
	if err != nil {
		// Only a definitive rejection invalidates the stored pair; a
		// transport failure leaves it in place for the next start.
		if errors.Is(err, api.ErrUnauthorized) {
			if clearErr := m.creds.Clear(); clearErr != nil {
				m.log.Warn().Err(clearErr).Msg("Failed to clear stale credentials")
			}
		}
		m.fail(err)
		return fmt.Errorf("stored credentials rejected: %w", err)
	}

	m.completeAuth(api.TokenPair{Access: stored.Access, Refresh: stored.Refresh}, user)
	return nil
}

// tokenExpired peeks at the exp claim without verifying the signature.
// The second return is false when the token is not a parseable JWT.
func tokenExpired(token string) (expired, ok bool) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false, false
	}
	if claims.ExpiresAt == nil {
		return false, false
	}

	return claims.ExpiresAt.Before(time.Now()), true
}
