package order

import (
	"metromobiles/internal/domain/cart"
)

// TaxRatePercent is the flat tax applied to the item subtotal.
const TaxRatePercent = 10

// PageContext selects which delivery-fee policy applies. The cart summary never
// charges shipping on an empty cart; the checkout page always charges the
// selected tier once an order is being placed. Both policies ship today from
// different pages and are kept as-is; unifying them would change pricing.
type PageContext int

const (
	ContextCartSummary PageContext = iota
	ContextCheckout
)

type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	DeliveryCents int64 `json:"delivery_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// ComputeTotals derives the charged amounts from the given lines. It is pure:
// deterministic, side-effect free, and never mutates its input.
func ComputeTotals(lines cart.Lines, tier DeliveryTier, page PageContext) Totals {
	subtotal := lines.SubtotalCents()
	tax := taxCents(subtotal)

	var delivery int64
	switch page {
	case ContextCheckout:
		delivery = tier.FeeCents()
	default:
		if subtotal > 0 {
			delivery = tier.FeeCents()
		}
	}

	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		DeliveryCents: delivery,
		TotalCents:    subtotal + tax + delivery,
	}
}

// taxCents rounds half-up to the nearest cent.
func taxCents(subtotalCents int64) int64 {
	return (subtotalCents*TaxRatePercent + 50) / 100
}
