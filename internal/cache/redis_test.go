package cache

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance.
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, 15*time.Minute), mr
}

func testItems() []model.CartItem {
	return []model.CartItem{
		{ProductID: "P001", Name: "Shirt", Price: decimal.RequireFromString("499.50"), Quantity: 2},
		{ProductID: "P002", Name: "Jacket", Price: decimal.NewFromInt(2500), Quantity: 1},
	}
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	stored, err := c.SetIfGeneration(ctx, "user-1", 0, testItems())
	require.NoError(t, err)
	assert.True(t, stored)
	assert.True(t, mr.Exists("cart:user-1"))
	assert.Equal(t, 15*time.Minute, mr.TTL("cart:user-1"))

	got, err := c.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "P001", got[0].ProductID)
	assert.True(t, got[0].Price.Equal(decimal.RequireFromString("499.5")))
	assert.Equal(t, 2, got[0].Quantity)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := setupTestRedis(t)

	_, err := c.Get(context.Background(), "nobody")

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	seed(t, c, "user-1")
	mr.FastForward(16 * time.Minute)

	_, err := c.Get(ctx, "user-1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Invalidate(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	seed(t, c, "user-1")
	require.NoError(t, c.Invalidate(ctx, "user-1"))
	assert.False(t, mr.Exists("cart:user-1"))

	gen, err := c.Generation(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	assert.NoError(t, c.Invalidate(ctx, "user-1"), "invalidating a missing cart is not an error")
	gen, err = c.Generation(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)
}

func TestRedisCache_SetIfGeneration(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	gen, err := c.Generation(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, c.Invalidate(ctx, "user-1"))

	stored, err := c.SetIfGeneration(ctx, "user-1", gen, testItems())
	require.NoError(t, err)
	assert.False(t, stored, "snapshot loaded before a write must not be cached")
	assert.False(t, mr.Exists("cart:user-1"))

	stored, err = c.SetIfGeneration(ctx, "user-1", 1, testItems())
	require.NoError(t, err)
	assert.True(t, stored)
	assert.True(t, mr.Exists("cart:user-1"))
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	c, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("cart:user-1", "{not json"))

	_, err := c.Get(context.Background(), "user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := setupTestRedis(t)
	mr.Close()

	_, err := c.Get(context.Background(), "user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func seed(t *testing.T, c *RedisCache, userID string) {
	t.Helper()
	gen, err := c.Generation(context.Background(), userID)
	require.NoError(t, err)
	stored, err := c.SetIfGeneration(context.Background(), userID, gen, testItems())
	require.NoError(t, err)
	require.True(t, stored)
}
