// Package cache keeps a read-through copy of user carts in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/model"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no cart is cached for the user.
var ErrCacheMiss = errors.New("cache miss")

// generationTTL bounds how long an idle user's write counter is kept.
const generationTTL = 24 * time.Hour

// CartCache stores cart snapshots keyed by user. Every write to a cart bumps
// the user's generation; a snapshot is only stored if the generation it was
// loaded under is still current.
type CartCache interface {
	Get(ctx context.Context, userID string) ([]model.CartItem, error)
	Generation(ctx context.Context, userID string) (int64, error)
	SetIfGeneration(ctx context.Context, userID string, generation int64, items []model.CartItem) (bool, error)
	Invalidate(ctx context.Context, userID string) error
}

// setIfGeneration writes KEYS[2] only while KEYS[1] still holds ARGV[1].
var setIfGeneration = redis.NewScript(`
local current = redis.call("GET", KEYS[1]) or "0"
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[2], ARGV[2])
end
return 1
`)

// RedisCache implements CartCache on a Redis client.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache whose entries expire after ttl.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached cart, or ErrCacheMiss.
func (r *RedisCache) Get(ctx context.Context, userID string) ([]model.CartItem, error) {
	data, err := r.client.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return items, nil
}

// Generation returns the user's current write generation, 0 if none.
func (r *RedisCache) Generation(ctx context.Context, userID string) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

// SetIfGeneration caches the cart unless the user's generation moved past
// generation. It reports whether the snapshot was stored.
func (r *RedisCache) SetIfGeneration(ctx context.Context, userID string, generation int64, items []model.CartItem) (bool, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return false, fmt.Errorf("marshal cart failed: %w", err)
	}

	stored, err := setIfGeneration.Run(ctx, r.client,
		[]string{generationKey(userID), cacheKey(userID)},
		strconv.FormatInt(generation, 10), data, r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis set failed: %w", err)
	}
	return stored == 1, nil
}

// Invalidate bumps the user's generation and drops the cached cart.
func (r *RedisCache) Invalidate(ctx context.Context, userID string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(userID))
		pipe.Expire(ctx, generationKey(userID), generationTTL)
		pipe.Del(ctx, cacheKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}
	return nil
}

func cacheKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

func generationKey(userID string) string {
	return fmt.Sprintf("cart:%s:gen", userID)
}
