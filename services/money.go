package services

import (
	"github.com/shopspring/decimal"

	"furuth/models"
)

// Money converts stored USD amounts for display. It never feeds back into
// stored amounts, apart from converting an admin's BDT price input to USD.
type Money struct {
	rate decimal.Decimal
}

// DualPrice is an amount shown in both currencies, with the shopper's
// preferred one first.
type DualPrice struct {
	USD       string `json:"usd"`
	BDT       string `json:"bdt"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// NewMoney uses rate BDT per USD.
func NewMoney(rate float64) Money {
	return Money{rate: decimal.NewFromFloat(rate)}
}

func (m Money) Rate() float64 { return m.rate.InexactFloat64() }

// Convert expresses a USD amount in currency.
func (m Money) Convert(usd float64, currency models.Currency) float64 {
	if currency == models.CurrencyBDT {
		return decimal.NewFromFloat(usd).Mul(m.rate).InexactFloat64()
	}
	return usd
}

// ToUSD converts an amount entered in currency back to USD.
func (m Money) ToUSD(amount float64, currency models.Currency) float64 {
	if currency == models.CurrencyBDT {
		return decimal.NewFromFloat(amount).Div(m.rate).InexactFloat64()
	}
	return amount
}

// Format renders "$12.34" for USD and whole taka ("৳1357") for BDT.
func (m Money) Format(usd float64, currency models.Currency) string {
	if currency == models.CurrencyBDT {
		return m.formatBDT(usd)
	}
	return formatUSD(usd)
}

func (m Money) Dual(usd float64, currency models.Currency) DualPrice {
	d := DualPrice{USD: formatUSD(usd), BDT: m.formatBDT(usd)}
	if currency == models.CurrencyBDT {
		d.Primary, d.Secondary = d.BDT, d.USD
	} else {
		d.Primary, d.Secondary = d.USD, d.BDT
	}
	return d
}

func formatUSD(usd float64) string {
	return "$" + decimal.NewFromFloat(usd).StringFixed(2)
}

func (m Money) formatBDT(usd float64) string {
	return "৳" + decimal.NewFromFloat(usd).Mul(m.rate).StringFixed(0)
}
