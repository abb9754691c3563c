package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dev@example.com", req.Email)

		json.NewEncoder(w).Encode(AuthResponse{
			Tokens: TokenPair{Access: "acc-1", Refresh: "ref-1"},
			User:   User{ID: "u1", Email: req.Email, UserType: "seeker"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	resp, err := c.Login(context.Background(), LoginRequest{Email: "dev@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", resp.Tokens.Access)
	assert.Equal(t, "ref-1", resp.Tokens.Refresh)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid credentials"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	_, err := c.Login(context.Background(), LoginRequest{Email: "dev@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestProfile_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/profile", r.URL.Path)
		require.Equal(t, "Bearer acc-1", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]User{
			"user": {ID: "u1", Email: "dev@example.com", UserType: "admin"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	user, err := c.Profile(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", user.Email)
	assert.True(t, user.IsAdministrative())
}

func TestLogout_SendsRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/logout", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ref-1", body["refresh"])

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"logged out"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	require.NoError(t, c.Logout(context.Background(), "ref-1"))
}

func TestJobs_StatusFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/jobs", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("status"))
		require.Equal(t, "Bearer acc-1", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]Job{
			{ID: "j1", Title: "Backend Engineer", Company: "Acme", Status: JobStatusOpen},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	jobs, err := c.Jobs(context.Background(), "acc-1", "open")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
}

func TestCreateJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req CreateJobRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Job{ID: "j2", Title: req.Title, Company: req.Company, Status: JobStatusOpen})
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	job, err := c.CreateJob(context.Background(), "acc-1", CreateJobRequest{Title: "SRE", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "j2", job.ID)
}

func TestServerError_IncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	_, err := c.Plans(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "boom")
}
