package media

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storefront/internal/model"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

type stubStore struct {
	url   string
	err   error
	calls int
}

func (s *stubStore) Put(ctx context.Context, img Image) (string, error) {
	s.calls++
	return s.url, s.err
}

func TestNewImage(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		contentType string
		ext         string
		err         error
	}{
		{name: "PNG", data: pngHeader, contentType: "image/png", ext: ".png"},
		{name: "JPEG", data: jpegHeader, contentType: "image/jpeg", ext: ".jpg"},
		{name: "GIF", data: []byte("GIF89a\x01\x00\x01\x00"), contentType: "image/gif", ext: ".gif"},
		{name: "Plain text", data: []byte("hello world"), err: model.ErrUnsupportedImage},
		{name: "HTML", data: []byte("<html><body></body></html>"), err: model.ErrUnsupportedImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewImage(tt.data)

			if tt.err != nil {
				assert.Equal(t, tt.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, img.ContentType)
			assert.True(t, strings.HasSuffix(img.Name, tt.ext), img.Name)
			assert.Equal(t, tt.data, img.Data)
		})
	}

	a, _ := NewImage(pngHeader)
	b, _ := NewImage(pngHeader)
	assert.NotEqual(t, a.Name, b.Name, "every upload gets a fresh name")
}

func TestS3Store_Put(t *testing.T) {
	putter := &fakePutter{}
	store := NewS3Store(putter, S3Options{
		Bucket: "shop-assets",
		Region: "ap-south-1",
		Prefix: "images/",
	}, zerolog.Nop())

	url, err := store.Put(context.Background(), Image{Name: "a.png", ContentType: "image/png", Data: pngHeader})

	require.NoError(t, err)
	assert.Equal(t, "https://shop-assets.s3.ap-south-1.amazonaws.com/images/a.png", url)
	require.NotNil(t, putter.input)
	assert.Equal(t, "shop-assets", *putter.input.Bucket)
	assert.Equal(t, "images/a.png", *putter.input.Key)
	assert.Equal(t, "image/png", *putter.input.ContentType)
	assert.Equal(t, pngHeader, putter.body)
}

func TestS3Store_PutError(t *testing.T) {
	store := NewS3Store(&fakePutter{err: errors.New("access denied")}, S3Options{Bucket: "b", Region: "r"}, zerolog.Nop())

	_, err := store.Put(context.Background(), Image{Name: "a.png", Data: pngHeader})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestFileStore_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	store, err := NewFileStore(dir, "/images/", zerolog.Nop())
	require.NoError(t, err)

	url, err := store.Put(context.Background(), Image{Name: "../../escape.png", Data: pngHeader})
	require.NoError(t, err)
	assert.Equal(t, "/images/escape.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "escape.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestFileStore_CancelledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "/images", zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, Image{Name: "a.png", Data: pngHeader})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFallbackStore(t *testing.T) {
	img := Image{Name: "a.png", Data: pngHeader}

	t.Run("Primary succeeds", func(t *testing.T) {
		primary := &stubStore{url: "https://s3/a.png"}
		secondary := &stubStore{url: "/images/a.png"}

		url, err := NewFallbackStore(primary, secondary, zerolog.Nop()).Put(context.Background(), img)

		require.NoError(t, err)
		assert.Equal(t, "https://s3/a.png", url)
		assert.Equal(t, 0, secondary.calls)
	})

	t.Run("Primary fails", func(t *testing.T) {
		primary := &stubStore{err: errors.New("S3 unavailable")}
		secondary := &stubStore{url: "/images/a.png"}

		url, err := NewFallbackStore(primary, secondary, zerolog.Nop()).Put(context.Background(), img)

		require.NoError(t, err)
		assert.Equal(t, "/images/a.png", url)
		assert.Equal(t, 1, primary.calls)
	})

	t.Run("No primary", func(t *testing.T) {
		secondary := &stubStore{url: "/images/a.png"}

		url, err := NewFallbackStore(nil, secondary, zerolog.Nop()).Put(context.Background(), img)

		require.NoError(t, err)
		assert.Equal(t, "/images/a.png", url)
	})

	t.Run("Both fail", func(t *testing.T) {
		primary := &stubStore{err: errors.New("S3 unavailable")}
		secondary := &stubStore{err: errors.New("disk full")}

		_, err := NewFallbackStore(primary, secondary, zerolog.Nop()).Put(context.Background(), img)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}
