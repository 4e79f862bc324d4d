package cart

import (
	"github.com/infpro/storefront-api/models"
	"github.com/shopspring/decimal"
)

var (
	// FreeShippingAbove: subtotals strictly greater than this ship free.
	FreeShippingAbove = decimal.NewFromInt(7000)
	MinShipping       = decimal.RequireFromString("29.9")
	ShippingRate      = decimal.RequireFromString("0.05")
)

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// FreeShipping reports whether the shipping line is zero.
func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}

// ComputeTotals prices a list of line items. It has no side effects.
// An empty list still pays the minimum shipping.
func ComputeTotals(items []models.CartItem) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Qty)))
		subtotal = subtotal.Add(line)
	}

	shipping := decimal.Zero
	if !subtotal.GreaterThan(FreeShippingAbove) {
		shipping = decimal.Max(MinShipping, subtotal.Mul(ShippingRate))
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
