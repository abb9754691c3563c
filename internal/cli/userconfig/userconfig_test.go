package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	isolateHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.SelectedBackendURL)
	assert.Empty(t, cfg.LastLoginEmail)
}

func TestUpdate_PreservesOtherFields(t *testing.T) {
	isolateHome(t)

	require.NoError(t, SetSelectedBackend("http://localhost:8080"))
	require.NoError(t, RecordLogin("dev@example.com"))

	// Recording the login must not drop the backend selection.
	url, err := GetSelectedBackend()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", url)

	email, err := LastLoginEmail()
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", email)
}

func TestUpdate_LeavesNoTempFile(t *testing.T) {
	home := isolateHome(t)

	require.NoError(t, SetSelectedBackend("http://localhost:8080"))

	dir := filepath.Join(home, ".config", "jobdeck")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.json", entries[0].Name())
}

func TestSetSelectedBackend_ClearedWithEmpty(t *testing.T) {
	isolateHome(t)

	require.NoError(t, SetSelectedBackend("http://localhost:8080"))
	require.NoError(t, SetSelectedBackend(""))

	url, err := GetSelectedBackend()
	require.NoError(t, err)
	assert.Empty(t, url)
}
