package pricing

import (
	"testing"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAmount(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, want.Equal(actual), "%s: expected %s, got %s", field, want, actual)
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	assertAmount(t, "0.05", rules.TaxRate, "tax rate")
	assertAmount(t, "50", rules.ShippingCharge, "shipping")
	assert.Equal(t, 10, rules.BulkThreshold)
	assertAmount(t, "0.10", rules.BulkDiscountRate, "bulk discount rate")
}

func TestPriceLine_NoDiscountUpToThreshold(t *testing.T) {
	rules := DefaultRules()
	prices := []string{"0", "1", "19.99", "200", "500", "1000"}

	for _, p := range prices {
		unitPrice := decimal.RequireFromString(p)
		for q := 1; q <= 10; q++ {
			total := PriceLine(LineItem{UnitPrice: unitPrice, Quantity: q}, rules)

			assert.True(t, total.LineDiscount.IsZero(), "price %s qty %d should not be discounted", p, q)
			assert.True(t, unitPrice.Mul(decimal.NewFromInt(int64(q))).Equal(total.LineSubtotal),
				"price %s qty %d: subtotal %s", p, q, total.LineSubtotal)
		}
	}
}

func TestPriceLine_DiscountAboveThreshold(t *testing.T) {
	rules := DefaultRules()
	prices := []string{"1", "19.99", "200", "500", "1000"}
	tenPercent := decimal.RequireFromString("0.10")

	for _, p := range prices {
		unitPrice := decimal.RequireFromString(p)
		for q := 11; q <= 40; q++ {
			gross := unitPrice.Mul(decimal.NewFromInt(int64(q)))
			total := PriceLine(LineItem{UnitPrice: unitPrice, Quantity: q}, rules)

			expectedDiscount := gross.Mul(tenPercent).Round(2)
			assert.True(t, expectedDiscount.Equal(total.LineDiscount),
				"price %s qty %d: discount %s, expected %s", p, q, total.LineDiscount, expectedDiscount)
			assert.True(t, gross.Sub(expectedDiscount).Equal(total.LineSubtotal),
				"price %s qty %d: subtotal %s", p, q, total.LineSubtotal)
		}
	}
}

func TestPriceLine_ThresholdBoundary(t *testing.T) {
	rules := DefaultRules()
	unitPrice := decimal.NewFromInt(100)

	atThreshold := PriceLine(LineItem{UnitPrice: unitPrice, Quantity: 10}, rules)
	assert.True(t, atThreshold.LineDiscount.IsZero(), "quantity 10 must not be discounted")
	assertAmount(t, "1000", atThreshold.LineSubtotal, "subtotal at 10")

	aboveThreshold := PriceLine(LineItem{UnitPrice: unitPrice, Quantity: 11}, rules)
	assert.False(t, aboveThreshold.LineDiscount.IsZero(), "quantity 11 must be discounted")
	assertAmount(t, "110", aboveThreshold.LineDiscount, "discount at 11")
	assertAmount(t, "990", aboveThreshold.LineSubtotal, "subtotal at 11")
}

func TestCalculate_Scenarios(t *testing.T) {
	tests := []struct {
		name             string
		items            []LineItem
		expectedLines    [][2]string // subtotal, discount
		expectedSubtotal string
		expectedDiscount string
		expectedTax      string
		expectedTotal    string
	}{
		{
			name: "Single line below threshold",
			items: []LineItem{
				{ProductID: "P1", Name: "Cotton Shirting", UnitPrice: decimal.NewFromInt(500), Quantity: 2},
			},
			expectedLines:    [][2]string{{"1000", "0"}},
			expectedSubtotal: "1000",
			expectedDiscount: "0",
			expectedTax:      "50",
			expectedTotal:    "1100",
		},
		{
			name: "Single discounted line",
			items: []LineItem{
				{ProductID: "P1", Name: "Cotton Shirting", UnitPrice: decimal.NewFromInt(500), Quantity: 12},
			},
			expectedLines:    [][2]string{{"5400", "600"}},
			expectedSubtotal: "5400",
			expectedDiscount: "600",
			expectedTax:      "270",
			expectedTotal:    "5720",
		},
		{
			name: "Mixed lines",
			items: []LineItem{
				{ProductID: "P1", Name: "Linen", UnitPrice: decimal.NewFromInt(200), Quantity: 5},
				{ProductID: "P2", Name: "Wool Blend", UnitPrice: decimal.NewFromInt(1000), Quantity: 11},
			},
			expectedLines:    [][2]string{{"1000", "0"}, {"9900", "1100"}},
			expectedSubtotal: "10900",
			expectedDiscount: "1100",
			expectedTax:      "545",
			expectedTotal:    "11495",
		},
		{
			name: "Fractional prices round tax to minor units",
			items: []LineItem{
				{ProductID: "P1", Name: "Buttons", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 3},
			},
			expectedLines:    [][2]string{{"59.97", "0"}},
			expectedSubtotal: "59.97",
			expectedDiscount: "0",
			expectedTax:      "3",
			expectedTotal:    "112.97",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := Calculate(tt.items, DefaultRules())
			require.NoError(t, err)

			require.Len(t, quote.Lines, len(tt.expectedLines))
			for i, line := range quote.Lines {
				assertAmount(t, tt.expectedLines[i][0], line.LineSubtotal, "line subtotal")
				assertAmount(t, tt.expectedLines[i][1], line.LineDiscount, "line discount")
				assert.Equal(t, tt.items[i].ProductID, line.ProductID)
			}

			assertAmount(t, tt.expectedSubtotal, quote.Subtotal, "subtotal")
			assertAmount(t, tt.expectedDiscount, quote.DiscountTotal, "discount total")
			assertAmount(t, tt.expectedTax, quote.Tax, "tax")
			assertAmount(t, "50", quote.Shipping, "shipping")
			assertAmount(t, tt.expectedTotal, quote.Total, "total")
		})
	}
}

func TestCalculate_TotalInvariant(t *testing.T) {
	rules := DefaultRules()

	for q := 1; q <= 25; q++ {
		items := []LineItem{
			{ProductID: "A", UnitPrice: decimal.RequireFromString("349.50"), Quantity: q},
			{ProductID: "B", UnitPrice: decimal.NewFromInt(75), Quantity: 26 - q},
		}

		quote, err := Calculate(items, rules)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, line := range quote.Lines {
			sum = sum.Add(line.LineSubtotal)
		}
		assert.True(t, sum.Equal(quote.Subtotal), "subtotal must equal sum of line subtotals")
		assert.True(t, quote.Subtotal.Mul(rules.TaxRate).Round(2).Equal(quote.Tax), "tax must be subtotal * rate")
		assert.True(t, quote.Subtotal.Add(quote.Tax).Add(rules.ShippingCharge).Equal(quote.Total),
			"total must be subtotal + tax + shipping")
	}
}

func TestCalculate_CustomRules(t *testing.T) {
	rules := Rules{
		TaxRate:          decimal.RequireFromString("0.18"),
		ShippingCharge:   decimal.Zero,
		BulkThreshold:    5,
		BulkDiscountRate: decimal.RequireFromString("0.20"),
	}

	quote, err := Calculate([]LineItem{{ProductID: "P1", UnitPrice: decimal.NewFromInt(100), Quantity: 6}}, rules)
	require.NoError(t, err)

	assertAmount(t, "120", quote.DiscountTotal, "discount total")
	assertAmount(t, "480", quote.Subtotal, "subtotal")
	assertAmount(t, "86.4", quote.Tax, "tax")
	assertAmount(t, "566.4", quote.Total, "total")
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name        string
		items       []LineItem
		expectedErr error
	}{
		{
			name:        "No items",
			items:       nil,
			expectedErr: model.ErrEmptyCart,
		},
		{
			name:        "Zero quantity",
			items:       []LineItem{{ProductID: "P1", UnitPrice: decimal.NewFromInt(10), Quantity: 0}},
			expectedErr: model.ErrInvalidQuantity,
		},
		{
			name:        "Negative quantity",
			items:       []LineItem{{ProductID: "P1", UnitPrice: decimal.NewFromInt(10), Quantity: -3}},
			expectedErr: model.ErrInvalidQuantity,
		},
		{
			name:        "Negative price",
			items:       []LineItem{{ProductID: "P1", UnitPrice: decimal.NewFromInt(-1), Quantity: 1}},
			expectedErr: model.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.items, DefaultRules())
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
