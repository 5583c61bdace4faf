package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// fileStore implements Store on the local file system. Files are served
// by the HTTP layer under urlPrefix.
type fileStore struct {
	dir       string
	urlPrefix string
	logger    zerolog.Logger
}

// NewFileStore creates an image store that writes into dir.
func NewFileStore(dir, urlPrefix string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}

	return &fileStore{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		logger:    logger.With().Str("component", "file-image-store").Logger(),
	}, nil
}

func (s *fileStore) Put(ctx context.Context, img Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(img.Name)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to write image")
		return "", fmt.Errorf("failed to write image %s: %w", path, err)
	}

	s.logger.Info().Str("file", path).Int("bytes", len(img.Data)).Msg("image stored locally")

	return s.urlPrefix + "/" + name, nil
}
