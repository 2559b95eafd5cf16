package wishlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanwear/storefront/internal/localstore"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	return NewService(store)
}

func TestToggle_AddThenRemove(t *testing.T) {
	svc := setupService(t)

	saved, err := svc.Toggle("local", 3)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, svc.Contains("local", 3))

	saved, err = svc.Toggle("local", 3)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, svc.Contains("local", 3))
}

func TestList_PreservesInsertionOrder(t *testing.T) {
	svc := setupService(t)

	for _, id := range []int{5, 1, 9} {
		_, err := svc.Toggle("local", id)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{5, 1, 9}, svc.List("local"))
}

func TestWishlist_PerUserIsolation(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Toggle("user-a", 1)
	require.NoError(t, err)

	assert.True(t, svc.Contains("user-a", 1))
	assert.False(t, svc.Contains("user-b", 1))
	assert.Empty(t, svc.List("user-b"))
}

func TestClear(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Toggle("local", 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear("local"))
	assert.Empty(t, svc.List("local"))

	// Clearing an already empty wishlist is fine.
	require.NoError(t, svc.Clear("local"))
}
