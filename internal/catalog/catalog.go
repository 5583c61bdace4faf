// Package catalog imports product feeds into the catalogue.
//
// A feed is a gzip-compressed file holding one JSON product document per
// line, in the same shape as the admin product form.
package catalog

import (
	"context"

	"storefront/internal/model"
)

// Loader reads a product feed.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.ProductRequest, error)
}
