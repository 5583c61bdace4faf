// Package objectstore builds the S3 client shared by the catalog importer and the image store.
package objectstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Getter is the subset of the S3 API used to read objects.
type Getter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Putter is the subset of the S3 API used to write objects.
type Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	_ Getter = (*s3.Client)(nil)
	_ Putter = (*s3.Client)(nil)
)

// NewS3Client loads AWS credentials from the default chain and returns an S3 client.
func NewS3Client(ctx context.Context, region string, logger zerolog.Logger) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().Str("region", region).Msg("S3 client initialised")

	return s3.NewFromConfig(cfg), nil
}

// ObjectURL returns the public URL of key. A non-empty baseURL replaces the
// virtual-hosted S3 endpoint, e.g. a CDN in front of the bucket.
func ObjectURL(baseURL, bucket, region, key string) string {
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
