// Package pricing is the single source of truth for order money math:
// currency selection, shipping, tax, and totals. Every code path that
// prices a cart (checkout, admin recompute, cart preview) goes through
// these functions.
package pricing

import (
	"math"
)

// Currencies
const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
)

// Shipping is flat per destination, not proportional to weight or
// distance. Tax is 18% GST for India, nothing elsewhere.
const (
	shippingINR = 50.0
	shippingUSD = 17.0
	gstRate     = 0.18
	countryIN   = "India"
)

// Item is one cart line as the calculator sees it: dual pricing with
// optional discounts, and a quantity.
type Item struct {
	PriceINR           float64
	PriceUSD           float64
	DiscountedPriceINR *float64
	DiscountedPriceUSD *float64
	Quantity           int
}

// Totals is the computed price breakdown for an order.
type Totals struct {
	Currency     string  `json:"currency"`
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}

// CurrencyFor maps a destination country to the charge currency.
func CurrencyFor(country string) string {
	if country == countryIN {
		return CurrencyINR
	}
	return CurrencyUSD
}

// ShippingCost returns the flat shipping charge for a destination.
func ShippingCost(country string) float64 {
	if country == countryIN {
		return shippingINR
	}
	return shippingUSD
}

// Tax returns the tax on a subtotal for a destination: 18% GST for
// India, zero otherwise.
func Tax(country string, subtotal float64) float64 {
	if country == countryIN {
		return Round2(subtotal * gstRate)
	}
	return 0
}

// UnitPrice returns the charged unit price of an item in the given
// currency, preferring the discounted price when present.
func (it Item) UnitPrice(currency string) float64 {
	if currency == CurrencyINR {
		if it.DiscountedPriceINR != nil {
			return *it.DiscountedPriceINR
		}
		return it.PriceINR
	}
	if it.DiscountedPriceUSD != nil {
		return *it.DiscountedPriceUSD
	}
	return it.PriceUSD
}

// Subtotal sums unit price × quantity over the items in a currency.
func Subtotal(items []Item, currency string) float64 {
	var sum float64
	for _, it := range items {
		sum += it.UnitPrice(currency) * float64(it.Quantity)
	}
	return Round2(sum)
}

// Compute derives the full price breakdown for a cart shipped to a
// destination country. Total = Subtotal + ShippingCost + Tax, rounded
// to two decimals.
func Compute(items []Item, country string) Totals {
	currency := CurrencyFor(country)
	subtotal := Subtotal(items, currency)
	shipping := ShippingCost(country)
	tax := Tax(country, subtotal)

	return Totals{
		Currency:     currency,
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        Round2(subtotal + shipping + tax),
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
