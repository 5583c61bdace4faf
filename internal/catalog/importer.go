package catalog

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/validation"

	"github.com/rs/zerolog"
)

// Result summarises an import run.
type Result struct {
	Files    int
	Imported int
	Skipped  int
}

// Importer loads feeds and upserts their products.
type Importer struct {
	loader    Loader
	products  repository.ProductRepository
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewImporter creates an Importer.
func NewImporter(loader Loader, products repository.ProductRepository, v *validation.Validator, logger zerolog.Logger) *Importer {
	return &Importer{
		loader:    loader,
		products:  products,
		validator: v,
		logger:    logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import loads every feed concurrently and upserts the valid records.
// Records without an ID or failing validation are skipped. When the same ID
// appears more than once, the record from the later feed wins. Any feed that
// cannot be loaded aborts the import before anything is written.
func (i *Importer) Import(ctx context.Context, paths []string) (Result, error) {
	if len(paths) == 0 {
		return Result{}, nil
	}

	i.logger.Info().Int("file_count", len(paths)).Msg("importing catalog feeds")

	type loadResult struct {
		index   int
		records []model.ProductRequest
		err     error
	}

	resultChan := make(chan loadResult, len(paths))
	var wg sync.WaitGroup

	for idx, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			records, err := i.loader.Load(ctx, path)
			resultChan <- loadResult{index: index, records: records, err: err}
		}(idx, path)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(paths))
	for r := range resultChan {
		results[r.index] = r
	}

	result := Result{Files: len(paths)}
	byID := make(map[string]int)
	var products []model.Product

	for idx, r := range results {
		if r.err != nil {
			i.logger.Error().Err(r.err).Str("file", paths[idx]).Msg("failed to load catalog feed")
			return Result{}, fmt.Errorf("failed to load catalog feed %s: %w", paths[idx], r.err)
		}

		for _, rec := range r.records {
			if rec.ID == "" {
				result.Skipped++
				i.logger.Warn().Str("file", paths[idx]).Str("name", rec.Name).Msg("skipping feed record without id")
				continue
			}
			if err := i.validator.Product(rec); err != nil {
				result.Skipped++
				i.logger.Warn().Err(err).Str("file", paths[idx]).Str("product_id", rec.ID).Msg("skipping invalid feed record")
				continue
			}

			p := rec.ToProduct()
			if pos, seen := byID[p.ID]; seen {
				products[pos] = p
				continue
			}
			byID[p.ID] = len(products)
			products = append(products, p)
		}
	}

	if err := i.products.Upsert(ctx, products); err != nil {
		return Result{}, fmt.Errorf("failed to store catalog: %w", err)
	}
	result.Imported = len(products)

	i.logger.Info().
		Int("files", result.Files).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("catalog import complete")

	return result, nil
}
