package cache

import (
	"context"
	"errors"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// cachedCartRepository serves cart reads from a CartCache and invalidates
// the cached copy on every write. Cache failures fall through to the store.
// Concurrent misses for the same user share a single store read, and a load
// that overlaps a write is returned but not cached.
type cachedCartRepository struct {
	next   repository.CartRepository
	cache  CartCache
	loads  singleflight.Group
	logger zerolog.Logger
}

// NewCartRepository wraps a cart repository with a read-through cache.
func NewCartRepository(next repository.CartRepository, cache CartCache, logger zerolog.Logger) repository.CartRepository {
	return &cachedCartRepository{
		next:   next,
		cache:  cache,
		logger: logger.With().Str("component", "cart_cache").Logger(),
	}
}

func (r *cachedCartRepository) List(ctx context.Context, userID string) ([]model.CartItem, error) {
	items, err := r.cache.Get(ctx, userID)
	if err == nil {
		return items, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("cart cache read failed")
	}

	generation, err := r.cache.Generation(ctx, userID)
	if err != nil {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("cart cache generation read failed")
		return r.next.List(ctx, userID)
	}

	// Loads are shared per generation, so a read after a write never joins
	// a load that started before it.
	key := userID + "#" + strconv.FormatInt(generation, 10)
	v, err, _ := r.loads.Do(key, func() (interface{}, error) {
		items, err := r.next.List(ctx, userID)
		if err != nil {
			return nil, err
		}

		stored, err := r.cache.SetIfGeneration(ctx, userID, generation, items)
		if err != nil {
			r.logger.Warn().Err(err).Str("user_id", userID).Msg("cart cache write failed")
		} else if !stored {
			r.logger.Debug().Str("user_id", userID).Msg("cart changed during load, snapshot not cached")
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.CartItem), nil
}

func (r *cachedCartRepository) Add(ctx context.Context, userID string, item model.CartItem) (*model.CartItem, error) {
	defer r.invalidate(ctx, userID)
	return r.next.Add(ctx, userID, item)
}

func (r *cachedCartRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	defer r.invalidate(ctx, userID)
	return r.next.UpdateQuantity(ctx, userID, productID, quantity)
}

func (r *cachedCartRepository) Remove(ctx context.Context, userID, productID string) error {
	defer r.invalidate(ctx, userID)
	return r.next.Remove(ctx, userID, productID)
}

func (r *cachedCartRepository) Clear(ctx context.Context, userID string) error {
	defer r.invalidate(ctx, userID)
	return r.next.Clear(ctx, userID)
}

func (r *cachedCartRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Invalidate(ctx, userID); err != nil {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("cart cache invalidation failed")
	}
}
