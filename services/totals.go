package services

import (
	"github.com/shopspring/decimal"

	"furuth/models"
)

var (
	TaxRate     = decimal.RequireFromString("0.08")
	ShippingFee = decimal.NewFromInt(5)
)

// ComputeTotals prices a set of cart lines in USD. Shipping is only charged
// on a non-empty subtotal.
func ComputeTotals(lines []models.CartLine) models.Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		price := decimal.NewFromFloat(line.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tax := subtotal.Mul(TaxRate)
	shipping := decimal.Zero
	if subtotal.GreaterThan(decimal.Zero) {
		shipping = ShippingFee
	}
	total := subtotal.Add(tax).Add(shipping)

	return models.Totals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
