// Package pricing computes checkout totals from cart line items.
//
// Amounts use exact decimal arithmetic. Line discounts and tax are rounded
// to two decimal places (half away from zero) as they are derived, so every
// stored amount is representable in currency minor units.
package pricing

import (
	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// Rules holds the constants that drive a quote.
type Rules struct {
	// TaxRate is applied to the post-discount subtotal.
	TaxRate decimal.Decimal
	// ShippingCharge is a flat amount added to every order.
	ShippingCharge decimal.Decimal
	// BulkThreshold is the quantity a line must strictly exceed to be discounted.
	BulkThreshold int
	// BulkDiscountRate is the fraction taken off a discounted line.
	BulkDiscountRate decimal.Decimal
}

// DefaultRules returns the storefront's standard pricing rules:
// 5% tax, 50 flat shipping, 10% off lines with more than 10 units.
func DefaultRules() Rules {
	return Rules{
		TaxRate:          decimal.RequireFromString("0.05"),
		ShippingCharge:   decimal.NewFromInt(50),
		BulkThreshold:    10,
		BulkDiscountRate: decimal.RequireFromString("0.10"),
	}
}

// LineItem is a product and quantity to be priced.
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// ItemTotal is the computed amount for a single line.
type ItemTotal struct {
	LineSubtotal decimal.Decimal
	LineDiscount decimal.Decimal
}

// PricedLine pairs a line item with its computed totals.
type PricedLine struct {
	LineItem
	ItemTotal
}

// Quote is the priced result for a set of line items.
type Quote struct {
	Lines         []PricedLine
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	Tax           decimal.Decimal
	Shipping      decimal.Decimal
	Total         decimal.Decimal
}

// PriceLine computes the subtotal and discount for one line.
// The caller is responsible for rejecting non-positive quantities.
func PriceLine(item LineItem, rules Rules) ItemTotal {
	gross := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

	if item.Quantity <= rules.BulkThreshold {
		return ItemTotal{
			LineSubtotal: gross,
			LineDiscount: decimal.Zero,
		}
	}

	discount := gross.Mul(rules.BulkDiscountRate).Round(2)
	return ItemTotal{
		LineSubtotal: gross.Sub(discount),
		LineDiscount: discount,
	}
}

// Calculate prices every line and aggregates the order totals.
func Calculate(items []LineItem, rules Rules) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, model.ErrEmptyCart
	}

	quote := Quote{
		Lines:         make([]PricedLine, 0, len(items)),
		Subtotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		Shipping:      rules.ShippingCharge,
	}

	for _, item := range items {
		if item.Quantity < 1 {
			return Quote{}, model.ErrInvalidQuantity
		}
		if item.UnitPrice.IsNegative() {
			return Quote{}, model.ErrInvalidPrice
		}

		total := PriceLine(item, rules)
		quote.Lines = append(quote.Lines, PricedLine{LineItem: item, ItemTotal: total})
		quote.Subtotal = quote.Subtotal.Add(total.LineSubtotal)
		quote.DiscountTotal = quote.DiscountTotal.Add(total.LineDiscount)
	}

	quote.Tax = quote.Subtotal.Mul(rules.TaxRate).Round(2)
	quote.Total = quote.Subtotal.Add(quote.Tax).Add(quote.Shipping)

	return quote, nil
}
