package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Get returns the cart and its display total.
func (s *cartService) Get(ctx context.Context, userID string) (*model.Cart, error) {
	items, err := s.cartRepo.List(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return &model.Cart{UserID: userID, Items: items, Total: total}, nil
}

// Add copies the product into the cart. A zero quantity adds one unit.
func (s *cartService) Add(ctx context.Context, userID string, req model.AddCartItemRequest) (*model.CartItem, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > model.MaxLineQuantity {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Str("product_id", req.ProductID).Msg("cannot add unknown product")
		return nil, model.ErrProductNotFound
	}

	item := model.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  req.Quantity,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}

	stored, err := s.cartRepo.Add(ctx, userID, item)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to add to cart")
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("product_id", product.ID).
		Int("quantity", stored.Quantity).
		Msg("product added to cart")

	return stored, nil
}

// UpdateQuantity sets the quantity of a cart line.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 || quantity > model.MaxLineQuantity {
		return model.ErrInvalidQuantity
	}
	return wrapRepoErr(s.cartRepo.UpdateQuantity(ctx, userID, productID, quantity), "failed to update cart item")
}

// Remove deletes a cart line.
func (s *cartService) Remove(ctx context.Context, userID, productID string) error {
	return wrapRepoErr(s.cartRepo.Remove(ctx, userID, productID), "failed to remove cart item")
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context, userID string) error {
	return wrapRepoErr(s.cartRepo.Clear(ctx, userID), "failed to clear cart")
}

func wrapRepoErr(err error, msg string) error {
	var domainErr *model.DomainError
	if err == nil || errors.As(err, &domainErr) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
