package media

import (
	"context"

	"github.com/rs/zerolog"
)

// fallbackStore tries the primary store first, then the secondary.
type fallbackStore struct {
	primary   Store
	secondary Store
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that uses secondary when primary fails.
// A nil primary means only secondary is used.
func NewFallbackStore(primary, secondary Store, logger zerolog.Logger) Store {
	return &fallbackStore{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "fallback-image-store").Logger(),
	}
}

func (s *fallbackStore) Put(ctx context.Context, img Image) (string, error) {
	if s.primary != nil {
		url, err := s.primary.Put(ctx, img)
		if err == nil {
			return url, nil
		}

		s.logger.Warn().
			Err(err).
			Str("name", img.Name).
			Msg("failed to store image in primary store, falling back")
	}

	return s.secondary.Put(ctx, img)
}
