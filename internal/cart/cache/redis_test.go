package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanwear/storefront/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func testCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID: userID,
		Items: []domain.LineItem{
			{ProductID: 1, Name: "Urban Hoodie", UnitPrice: 2850, Quantity: 1, Size: "M", Color: "Black"},
			{ProductID: 2, Name: "Premium T-Shirt", UnitPrice: 1950, Quantity: 2, Size: "L", Color: "White"},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestGet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()
	userID := "user123"

	cart := testCart(userID)
	cartJSON, _ := json.Marshal(cart)
	mr.Set(cacheKey(userID), string(cartJSON))

	result, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, result.UserID)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(6750), result.Subtotal())
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	_, err := cache.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGet_CorruptEntry(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Set(cacheKey("user123"), "{broken")

	_, err := cache.Get(context.Background(), "user123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_ThenGet(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	cart := testCart("user123")
	require.NoError(t, cache.Set(ctx, "user123", cart))

	result, err := cache.Get(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalItems())
}

func TestSet_AppliesTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, cache.Set(context.Background(), "user123", testCart("user123")))

	ttl := mr.TTL(cacheKey("user123"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestSet_UsesNamespacedKey(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, cache.Set(context.Background(), "user123", testCart("user123")))

	assert.True(t, mr.Exists("storefront:cart:user123"))
}

func TestDelete(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "user123", testCart("user123")))
	require.NoError(t, cache.Delete(ctx, "user123"))

	_, err := cache.Get(ctx, "user123")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
