package integration

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeed(t *testing.T, dir, name string, records ...map[string]any) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	enc := json.NewEncoder(gz)
	for _, rec := range records {
		require.NoError(t, enc.Encode(rec))
	}
	require.NoError(t, gz.Close())

	return path
}

func TestCatalogImport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	CleanupDB(t, testDB.Pool)

	logger := zerolog.Nop()
	ctx := context.Background()
	dir := t.TempDir()

	first := writeFeed(t, dir, "shirts.jsonl.gz",
		map[string]any{"id": "S1", "name": "Linen Shirt", "price": "899", "category": "Shirts", "attributes": map[string]any{"color": "white"}},
		map[string]any{"id": "S2", "name": "Oxford Shirt", "price": "1299", "category": "Shirts"},
		map[string]any{"name": "No ID", "price": "10", "category": "Shirts"},
	)
	second := writeFeed(t, dir, "updates.jsonl.gz",
		map[string]any{"id": "S1", "name": "Linen Shirt", "price": "799", "category": "Shirts"},
		map[string]any{"id": "S3", "name": "", "price": "10", "category": "Shirts"},
	)

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	importer := catalog.NewImporter(catalog.NewFallbackLoader(nil, catalog.NewFileLoader(logger), "", logger), productRepo, validation.New(), logger)

	result, err := importer.Import(ctx, []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)

	s1, err := productRepo.GetByID(ctx, "S1")
	require.NoError(t, err)
	require.NotNil(t, s1)
	assertAmount(t, "799", s1.Price, "price")
	assert.Equal(t, model.DefaultAvailability, s1.Availability)

	// Re-importing is idempotent
	_, err = importer.Import(ctx, []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, 2, CountRows(t, testDB.Pool, "products"))

	_, err = importer.Import(ctx, []string{filepath.Join(dir, "missing.jsonl.gz")})
	assert.Error(t, err)
}
