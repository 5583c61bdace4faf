package service

import (
	"context"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/google/uuid"
)

// ProductService defines catalogue operations.
type ProductService interface {
	// List retrieves products matching the filter. Missing paging values get defaults.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create adds a product from the admin form.
	Create(ctx context.Context, req model.ProductRequest) (*model.Product, error)

	// UploadImage stores a product image and returns its URL.
	UploadImage(ctx context.Context, data []byte) (string, error)
}

// CartService defines per-user cart operations.
type CartService interface {
	Get(ctx context.Context, userID string) (*model.Cart, error)
	Add(ctx context.Context, userID string, req model.AddCartItemRequest) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// CheckoutService prices and places orders for the signed-in user on ctx.
type CheckoutService interface {
	// Quote prices the selected cart lines without storing anything.
	Quote(ctx context.Context, req model.QuoteRequest) (*model.QuoteResponse, error)

	// PlaceOrder stores one order for the selected cart lines.
	PlaceOrder(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResponse, error)
}

// AccountService defines the signed-in user's account operations.
type AccountService interface {
	Profile(ctx context.Context, id auth.Identity) (*model.User, error)
	UpdateProfile(ctx context.Context, id auth.Identity, req model.ProfileUpdateRequest) (*model.User, error)

	ListOrders(ctx context.Context, userID string, limit, offset int) ([]model.Order, error)
	GetOrder(ctx context.Context, userID string, orderID uuid.UUID) (*model.Order, error)

	ListAddresses(ctx context.Context, userID string) ([]model.ShippingAddress, error)
	CreateAddress(ctx context.Context, userID string, details model.ShippingDetails) (*model.ShippingAddress, error)
	UpdateAddress(ctx context.Context, userID string, id uuid.UUID, details model.ShippingDetails) (*model.ShippingAddress, error)
	DeleteAddress(ctx context.Context, userID string, id uuid.UUID) error

	// ListUsers is used by the admin console.
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, error)
}

// normalisePage applies the default and maximum page size.
func normalisePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
