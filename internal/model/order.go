package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods offered at checkout.
const (
	PaymentCard = "card"
	PaymentUPI  = "upi"
	PaymentCOD  = "cod"
)

// MaxOrderAmount is the largest amount the order columns can store.
var MaxOrderAmount = decimal.RequireFromString("9999999999.99")

// Order represents a placed order. Orders are append-only.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountTotal   decimal.Decimal `json:"discountTotal"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderItem is the per-line snapshot stored with an order.
type OrderItem struct {
	ID           uuid.UUID       `json:"-"`
	OrderID      uuid.UUID       `json:"-"`
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	LineSubtotal decimal.Decimal `json:"lineSubtotal"`
	LineDiscount decimal.Decimal `json:"lineDiscount"`
}

// CheckoutItemRequest selects a cart line and the quantity to order.
// A zero quantity means the quantity held in the cart.
type CheckoutItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// QuoteRequest represents the request payload for pricing a checkout.
// An empty item list prices the whole cart.
type QuoteRequest struct {
	Items []CheckoutItemRequest `json:"items"`
}

// CheckoutRequest represents the request payload for placing an order.
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items"`
	Shipping      ShippingDetails       `json:"shipping"`
	PaymentMethod string                `json:"paymentMethod" validate:"omitempty,oneof=card upi cod"`
}

// QuoteResponse represents the priced checkout returned before submission.
type QuoteResponse struct {
	Items         []OrderItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
	Tax           decimal.Decimal `json:"tax"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
}

// CheckoutResponse represents the response payload for a placed order.
type CheckoutResponse struct {
	Order        *Order `json:"order"`
	AddressSaved bool   `json:"addressSaved"`
}
