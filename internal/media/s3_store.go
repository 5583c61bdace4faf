package media

import (
	"bytes"
	"context"
	"fmt"

	"storefront/internal/objectstore"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Store implements Store on an S3 bucket.
type s3Store struct {
	client  objectstore.Putter
	bucket  string
	region  string
	prefix  string
	baseURL string
	logger  zerolog.Logger
}

// S3Options configures an S3-backed image store.
type S3Options struct {
	Bucket  string
	Region  string
	Prefix  string
	BaseURL string
}

// NewS3Store creates an image store that uploads to S3.
func NewS3Store(client objectstore.Putter, opts S3Options, logger zerolog.Logger) Store {
	return &s3Store{
		client:  client,
		bucket:  opts.Bucket,
		region:  opts.Region,
		prefix:  opts.Prefix,
		baseURL: opts.BaseURL,
		logger:  logger.With().Str("component", "s3-image-store").Logger(),
	}
}

func (s *s3Store) Put(ctx context.Context, img Image) (string, error) {
	key := s.prefix + img.Name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentType:   aws.String(img.ContentType),
		ContentLength: aws.Int64(int64(len(img.Data))),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Int("bytes", len(img.Data)).
		Msg("image uploaded to S3")

	return objectstore.ObjectURL(s.baseURL, s.bucket, s.region, key), nil
}
