package credstore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
	"github.com/hiredesk/hiredesk/pkg/credstore"
)

func newFileStore(t *testing.T) (*credstore.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "creds", "credentials.json")
	store, err := credstore.NewFileStore(path)
	require.NoError(t, err)
	return store, path
}

var testUser = atsapi.User{
	ID:       1,
	Username: "alice",
	Email:    "a@x.com",
	Role:     atsapi.RoleCandidate,
}

func TestNewFileStore(t *testing.T) {
	_, err := credstore.NewFileStore("")
	assert.ErrorIs(t, err, credstore.ErrEmptyPath)
}

func TestFileStore_SaveLoad(t *testing.T) {
	t.Run("round trips credential and user", func(t *testing.T) {
		store, _ := newFileStore(t)

		cred := credstore.Credential{AccessToken: "abc", RefreshToken: "ref"}
		require.NoError(t, store.Save(cred, testUser))

		gotCred, gotUser, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, cred, gotCred)
		assert.Equal(t, testUser, gotUser)
	})

	t.Run("save overwrites previous credential", func(t *testing.T) {
		store, _ := newFileStore(t)

		require.NoError(t, store.Save(credstore.Credential{AccessToken: "old", RefreshToken: "old-r"}, testUser))
		require.NoError(t, store.Save(credstore.Credential{AccessToken: "new", RefreshToken: "new-r"}, testUser))

		cred, _, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "new", cred.AccessToken)
		assert.Equal(t, "new-r", cred.RefreshToken)
	})

	t.Run("file is private to the owner", func(t *testing.T) {
		store, path := newFileStore(t)
		require.NoError(t, store.Save(credstore.Credential{AccessToken: "abc"}, testUser))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("user record is stored serialized", func(t *testing.T) {
		store, path := newFileStore(t)
		require.NoError(t, store.Save(credstore.Credential{AccessToken: "abc", RefreshToken: "ref"}, testUser))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(raw, &payload))
		assert.Equal(t, "abc", payload["token"])
		assert.Equal(t, "ref", payload["refreshToken"])
		assert.JSONEq(t, `{"id":1,"username":"alice","email":"a@x.com","role":"candidate"}`, payload["user"])
	})
}

func TestFileStore_Load(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store, _ := newFileStore(t)
		_, _, err := store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)
	})

	t.Run("corrupt document", func(t *testing.T) {
		store, path := newFileStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, _, err := store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)
	})

	t.Run("missing token key", func(t *testing.T) {
		store, path := newFileStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(`{"user":"{\"id\":1}"}`), 0o600))

		_, _, err := store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)
	})

	t.Run("corrupt user value", func(t *testing.T) {
		store, path := newFileStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(`{"token":"abc","refreshToken":"ref","user":"{broken"}`), 0o600))

		_, _, err := store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)
	})
}

func TestFileStore_Clear(t *testing.T) {
	t.Run("removes stored credential", func(t *testing.T) {
		store, _ := newFileStore(t)
		require.NoError(t, store.Save(credstore.Credential{AccessToken: "abc"}, testUser))

		require.NoError(t, store.Clear())
		_, _, err := store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)
	})

	t.Run("clearing an empty store succeeds", func(t *testing.T) {
		store, _ := newFileStore(t)
		assert.NoError(t, store.Clear())
		assert.NoError(t, store.Clear())
	})
}
