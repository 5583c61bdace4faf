// Package events announces placed orders to downstream consumers.
package events

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoutingKeyOrderPlaced is the routing key of OrderPlaced messages.
const RoutingKeyOrderPlaced = "order.placed"

// OrderPlaced is the message published after an order is stored.
type OrderPlaced struct {
	OrderID   uuid.UUID       `json:"orderId"`
	UserID    string          `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	Items     []PlacedItem    `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PlacedItem is a product and quantity in an OrderPlaced message.
type PlacedItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// NewOrderPlaced builds the event for order.
func NewOrderPlaced(order *model.Order) OrderPlaced {
	ev := OrderPlaced{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		Items:     make([]PlacedItem, 0, len(order.Items)),
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		ev.Items = append(ev.Items, PlacedItem{ProductID: item.ProductID, Quantity: item.Quantity})
		ev.ItemCount += item.Quantity
	}
	return ev
}

// Publisher sends order events.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *model.Order) error
	Close() error
}

// nopPublisher discards every event.
type nopPublisher struct{}

// NewNopPublisher returns a Publisher that does nothing.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) PublishOrderPlaced(context.Context, *model.Order) error { return nil }

func (nopPublisher) Close() error { return nil }
