package service

import (
	"context"
	"fmt"

	"storefront/internal/media"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	images      media.Store
	validator   *validation.Validator
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	images media.Store,
	validator *validation.Validator,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		validator:   validator,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	filter.Limit, filter.Offset = normalisePage(filter.Limit, filter.Offset)

	switch filter.Sort {
	case model.SortPriceAsc, model.SortPriceDesc:
	default:
		filter.Sort = model.SortRelevance
	}
	if filter.Category == "all" {
		filter.Category = ""
	}
	if filter.Brand == "all" {
		filter.Brand = ""
	}
	if filter.Color == "all" {
		filter.Color = ""
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", filter.Limit).
		Int("offset", filter.Offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create adds a product from the admin form. A blank ID is assigned.
func (s *productService) Create(ctx context.Context, req model.ProductRequest) (*model.Product, error) {
	if err := s.validator.Product(req); err != nil {
		return nil, err
	}

	product := req.ToProduct()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	if err := s.productRepo.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")

	return &product, nil
}

// UploadImage stores a product image and returns its URL.
func (s *productService) UploadImage(ctx context.Context, data []byte) (string, error) {
	img, err := media.NewImage(data)
	if err != nil {
		return "", err
	}

	url, err := s.images.Put(ctx, img)
	if err != nil {
		s.logger.Error().Err(err).Str("name", img.Name).Msg("failed to store image")
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return url, nil
}
