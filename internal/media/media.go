// Package media stores product images uploaded from the admin console.
package media

import (
	"context"
	"net/http"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// Image is an uploaded file ready to be stored.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Store persists images and returns the URL they are served from.
type Store interface {
	Put(ctx context.Context, img Image) (string, error)
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// NewImage sniffs the content type of data and assigns a fresh file name.
// It returns model.ErrUnsupportedImage for anything but JPEG, PNG, GIF or WebP.
func NewImage(data []byte) (Image, error) {
	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return Image{}, model.ErrUnsupportedImage
	}

	return Image{
		Name:        uuid.NewString() + ext,
		ContentType: contentType,
		Data:        data,
	}, nil
}
