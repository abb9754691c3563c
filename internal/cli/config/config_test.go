package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir string, cfg *Config) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, Save(path, cfg))
	return path
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, &Config{
		Backends: []Backend{
			{URL: "https://jobs.example.com", Alias: "production"},
			{URL: "http://localhost:8080", Alias: "local"},
		},
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Backends, 2)
	assert.Equal(t, "production", cfg.Backends[0].Alias)
}

func TestFindConfigFile_SearchesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, &Config{Backends: []Backend{{URL: "http://localhost:8080", Alias: "local"}}})

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { os.Chdir(cwd) })

	found, err := FindConfigFile()
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, expected, resolved)
}

func TestGetBackendByAlias(t *testing.T) {
	cfg := &Config{Backends: []Backend{
		{URL: "https://jobs.example.com", Alias: "production"},
		{URL: "http://localhost:8080", Alias: "local"},
	}}

	backend, err := cfg.GetBackendByAlias("local")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", backend.URL)

	_, err = cfg.GetBackendByAlias("staging")
	assert.Error(t, err)
}

func TestGetDefaultBackend(t *testing.T) {
	cfg := &Config{Backends: []Backend{{URL: "https://jobs.example.com", Alias: "production"}}}
	backend, err := cfg.GetDefaultBackend()
	require.NoError(t, err)
	assert.Equal(t, "production", backend.Alias)

	_, err = (&Config{}).GetDefaultBackend()
	assert.Error(t, err)
}

func TestAdminLandingURL(t *testing.T) {
	b := Backend{URL: "https://jobs.example.com", Alias: "production"}
	assert.Equal(t, "https://jobs.example.com/admin", b.AdminLandingURL())
}
