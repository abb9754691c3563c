package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/cli/backendselect"
	"github.com/jobdeck-dev/jobdeck/internal/cli/config"
	"github.com/jobdeck-dev/jobdeck/internal/credstore"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
	"github.com/jobdeck-dev/jobdeck/internal/redirect"
	"github.com/jobdeck-dev/jobdeck/internal/session"
)

// getSelectedBackend loads the config and resolves the backend to talk to.
// This is common logic used by most commands.
func getSelectedBackend(backendAlias string) (*config.Backend, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'jobdeck init' to create a configuration file", err)
	}

	backend, err := backendselect.ResolveBackend(cfg, backendAlias)
	if err != nil {
		return nil, err
	}

	if backend.URL == "" {
		return nil, fmt.Errorf("backend URL is empty. Please edit jobdeck.json and add a valid URL")
	}

	return backend, nil
}

// sessionEnv bundles everything a command needs to talk to one backend.
type sessionEnv struct {
	backend *config.Backend
	client  *api.Client
	manager *session.Manager
	policy  *redirect.Policy
}

// newSessionEnv wires the API client, credential store and session manager
// for the resolved backend. withRedirect additionally subscribes the admin
// redirect policy; sign-in commands use it, read-only commands do not open
// browsers.
func newSessionEnv(backendAlias string, withRedirect bool) (*sessionEnv, error) {
	backend, err := getSelectedBackend(backendAlias)
	if err != nil {
		return nil, err
	}

	log := logger.GetLogger()
	client := api.New(backend.URL, log)
	store := credstore.Open(backend.URL)
	manager := session.NewManager(client, store, log)

	env := &sessionEnv{
		backend: backend,
		client:  client,
		manager: manager,
	}

	if withRedirect {
		landingURL := backend.AdminLandingURL()
		if override := os.Getenv("JOBDECK_ADMIN_URL"); override != "" {
			landingURL = override
		}
		env.policy = redirect.NewPolicy(landingURL, nil, log)
		manager.Subscribe(env.policy.Listener())
	}

	return env, nil
}

// cmdContext returns the context commands run under.
func cmdContext() context.Context {
	return context.Background()
}

// requireAuth rehydrates the session from stored credentials and fails
// with session.ErrNotAuthenticated when no usable session results.
func (e *sessionEnv) requireAuth() error {
	if err := e.manager.Bootstrap(cmdContext()); err != nil {
		return fmt.Errorf("%w: %v", session.ErrNotAuthenticated, err)
	}
	if !e.manager.State().IsAuthenticated {
		return fmt.Errorf("%w: run 'jobdeck login' first", session.ErrNotAuthenticated)
	}
	return nil
}

// accessToken returns the current session's access token, or empty.
func (e *sessionEnv) accessToken() string {
	st := e.manager.State()
	if st.Tokens == nil {
		return ""
	}
	return st.Tokens.Access
}
