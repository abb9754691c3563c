package redirect

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/credstore"
	"github.com/jobdeck-dev/jobdeck/internal/session"
)

// recordingNavigator captures opened URLs instead of launching a browser
type recordingNavigator struct {
	mu   sync.Mutex
	urls []string
}

func (r *recordingNavigator) Open(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
	return nil
}

func (r *recordingNavigator) opened() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.urls...)
}

type staticGateway struct {
	user api.User
}

func (g *staticGateway) Login(ctx context.Context, creds api.LoginRequest) (*api.AuthResponse, error) {
	return &api.AuthResponse{
		Tokens: api.TokenPair{Access: "acc", Refresh: "ref"},
		User:   g.user,
	}, nil
}

func (g *staticGateway) Register(ctx context.Context, userData api.RegisterRequest) (*api.AuthResponse, error) {
	return g.Login(ctx, api.LoginRequest{})
}

func (g *staticGateway) Logout(ctx context.Context, refreshToken string) error { return nil }

func (g *staticGateway) Profile(ctx context.Context, accessToken string) (*api.User, error) {
	u := g.user
	return &u, nil
}

func newAuthedManager(t *testing.T, user api.User, nav Navigator) (*session.Manager, *Policy) {
	t.Helper()
	m := session.NewManager(&staticGateway{user: user}, credstore.NewMemoryStore(), zerolog.Nop())
	p := NewPolicy("https://jobs.example.com/admin", nav, zerolog.Nop())
	m.Subscribe(p.Listener())
	return m, p
}

func TestPolicy_FiresOnceForAdminUser(t *testing.T) {
	nav := &recordingNavigator{}
	admin := api.User{ID: "u1", Email: "a@example.com", UserType: "admin"}
	m, p := newAuthedManager(t, admin, nav)

	require.NoError(t, m.Login(context.Background(), api.LoginRequest{Email: "a@example.com", Password: "pw"}))
	assert.Equal(t, []string{"https://jobs.example.com/admin"}, nav.opened())
	assert.True(t, p.Fired())

	// Further authenticated transitions must not re-fire.
	m.RefreshProfile(context.Background())
	m.Logout(context.Background())
	require.NoError(t, m.Login(context.Background(), api.LoginRequest{Email: "a@example.com", Password: "pw"}))
	assert.Len(t, nav.opened(), 1)
}

func TestPolicy_NeverFiresForNonAdmin(t *testing.T) {
	nav := &recordingNavigator{}
	seeker := api.User{ID: "u2", Email: "s@example.com", UserType: "seeker"}
	m, p := newAuthedManager(t, seeker, nav)

	require.NoError(t, m.Login(context.Background(), api.LoginRequest{Email: "s@example.com", Password: "pw"}))
	m.RefreshProfile(context.Background())

	assert.Empty(t, nav.opened())
	assert.False(t, p.Fired())
}

func TestPolicy_StaffAndSuperuserQualify(t *testing.T) {
	for _, user := range []api.User{
		{ID: "u3", Email: "staff@example.com", UserType: "seeker", IsStaff: true},
		{ID: "u4", Email: "root@example.com", UserType: "seeker", IsSuperuser: true},
	} {
		nav := &recordingNavigator{}
		m, _ := newAuthedManager(t, user, nav)
		require.NoError(t, m.Login(context.Background(), api.LoginRequest{Email: user.Email, Password: "pw"}))
		assert.Len(t, nav.opened(), 1, "user %s should trigger the redirect", user.Email)
	}
}

func TestPolicy_IgnoresUnauthenticatedTransitions(t *testing.T) {
	nav := &recordingNavigator{}
	p := NewPolicy("https://jobs.example.com/admin", nav, zerolog.Nop())
	listener := p.Listener()

	admin := api.User{ID: "u1", UserType: "admin"}
	listener(session.State{User: &admin, IsAuthenticated: false})
	listener(session.State{IsLoading: true})

	assert.Empty(t, nav.opened())
}
