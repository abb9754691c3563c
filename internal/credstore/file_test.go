package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck-dev/jobdeck/internal/api"
)

func TestFileStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)

	creds := Credentials{
		Access:  "acc-1",
		Refresh: "ref-1",
		User:    &api.User{ID: "u1", Email: "dev@example.com", UserType: "admin"},
	}
	require.NoError(t, store.Save(creds))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "acc-1", loaded.Access)
	assert.Equal(t, "ref-1", loaded.Refresh)
	require.NotNil(t, loaded.User)
	assert.Equal(t, "dev@example.com", loaded.User.Email)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoCredentials)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope", "credentials.json"))
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestFileStore_LoadRejectsPartialPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"acc-1"}`), 0600))

	store := NewFileStore(path)
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestFileStore_SaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "credentials.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(Credentials{Access: "acc-1", Refresh: "ref-1"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "acc-1", loaded.Access)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCredentials)

	require.NoError(t, store.Save(Credentials{Access: "acc-1", Refresh: "ref-1"}))
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "ref-1", loaded.Refresh)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoCredentials)
	assert.Equal(t, 1, store.Saves)
	assert.Equal(t, 1, store.Clears)
}
