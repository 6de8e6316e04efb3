package credstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiredesk/hiredesk/pkg/credstore"
)

func TestMemoryStore(t *testing.T) {
	t.Run("empty store has no credential", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		_, _, err := store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)
	})

	t.Run("round trips credential and user", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		cred := credstore.Credential{AccessToken: "tok1", RefreshToken: "ref1"}
		require.NoError(t, store.Save(cred, testUser))

		gotCred, gotUser, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, cred, gotCred)
		assert.Equal(t, testUser, gotUser)
	})

	t.Run("clear empties the store", func(t *testing.T) {
		store := credstore.NewMemoryStore()
		require.NoError(t, store.Save(credstore.Credential{AccessToken: "tok1"}, testUser))
		require.NoError(t, store.Clear())

		_, _, err := store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)

		// Clearing again is a no-op.
		assert.NoError(t, store.Clear())
	})
}
