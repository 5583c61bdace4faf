package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. It returns nil when the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Create inserts a new product and sets its creation time.
	Create(ctx context.Context, product *model.Product) error

	// Upsert inserts or replaces products in a single batch.
	Upsert(ctx context.Context, products []model.Product) error
}

// CartRepository defines the interface for per-user cart storage.
type CartRepository interface {
	// List retrieves the user's cart lines in the order they were added.
	List(ctx context.Context, userID string) ([]model.CartItem, error)

	// Add stores a product in the cart, or increases its quantity if already present.
	Add(ctx context.Context, userID string, item model.CartItem) (*model.CartItem, error)

	// UpdateQuantity sets the quantity of a cart line.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error

	// Remove deletes a single cart line.
	Remove(ctx context.Context, userID, productID string) error

	// Clear deletes every line in the user's cart.
	Clear(ctx context.Context, userID string) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and sets its creation time.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. It returns nil when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first, along with their items.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, error)
}

// AddressRepository defines the interface for the per-user address book.
type AddressRepository interface {
	Create(ctx context.Context, address *model.ShippingAddress) error
	ListByUser(ctx context.Context, userID string) ([]model.ShippingAddress, error)
	Update(ctx context.Context, address *model.ShippingAddress) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// UserRepository defines the interface for user profiles.
type UserRepository interface {
	// Ensure creates the profile on first sign-in and returns the stored profile.
	Ensure(ctx context.Context, id, email string) (*model.User, error)

	// GetByID returns nil when the user does not exist.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// UpdateProfile changes the editable profile fields. It returns nil when the user does not exist.
	UpdateProfile(ctx context.Context, id string, req model.ProfileUpdateRequest) (*model.User, error)

	List(ctx context.Context, limit, offset int) ([]model.User, error)
}
