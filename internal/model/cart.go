package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity is the largest quantity a single cart or order line may hold.
const MaxLineQuantity = 10_000

// CartItem is a product copied into a user's cart. Price is the snapshot
// taken when the product was added.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"addedAt"`
}

// Cart is the current contents of a user's cart.
type Cart struct {
	UserID string          `json:"userId"`
	Items  []CartItem      `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

// AddCartItemRequest represents the request payload for adding a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents the request payload for changing a line quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
