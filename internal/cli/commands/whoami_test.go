package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck-dev/jobdeck/internal/cli/config"
	"github.com/jobdeck-dev/jobdeck/internal/session"
)

func TestWhoami_NotLoggedIn(t *testing.T) {
	setupTestEnvironment(t, []config.Backend{
		{Alias: "test", URL: "http://localhost:8080"},
	})

	err := runWhoami("test")
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestWhoami_ShowsRehydratedSession(t *testing.T) {
	backend := mockBackend(t, "test@example.com", "password123")
	defer backend.Close()

	setupTestEnvironment(t, []config.Backend{
		{Alias: "test", URL: backend.URL},
	})

	require.NoError(t, runLogin("test@example.com", "password123", "test"))

	// A fresh command process rehydrates from the stored pair.
	require.NoError(t, runWhoami("test"))
}
