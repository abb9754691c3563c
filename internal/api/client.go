package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

var (
	// ErrUnauthorized indicates the backend rejected the supplied credentials
	// or token (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")
)

// Client represents an HTTP client for the jobdeck API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a new API client for the given backend base URL
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// newRequest builds a JSON request with a fresh request ID and optional bearer token.
func (c *Client) newRequest(ctx context.Context, method, path, accessToken string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(requestIDHeader, ulid.Make().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	}

	return req, nil
}

// do executes the request and decodes the response body into out (when non-nil).
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Msg("API request completed")

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Login authenticates the user and returns the issued token pair and user record
func (c *Client) Login(ctx context.Context, creds LoginRequest) (*AuthResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/login", "", creds)
	if err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := c.do(req, &authResp); err != nil {
		return nil, err
	}

	return &authResp, nil
}

// Register creates a new account and returns the issued token pair and user record
func (c *Client) Register(ctx context.Context, userData RegisterRequest) (*AuthResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/register", "", userData)
	if err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := c.do(req, &authResp); err != nil {
		return nil, err
	}

	return &authResp, nil
}

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

// Logout invalidates the refresh token on the backend
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/logout", "", logoutRequest{Refresh: refreshToken})
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

type profileResponse struct {
	User User `json:"user"`
}

// Profile fetches the authenticated user's profile
func (c *Client) Profile(ctx context.Context, accessToken string) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/profile", accessToken, nil)
	if err != nil {
		return nil, err
	}

	var profResp profileResponse
	if err := c.do(req, &profResp); err != nil {
		return nil, err
	}

	return &profResp.User, nil
}
