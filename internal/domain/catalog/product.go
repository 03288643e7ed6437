package catalog

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidName   = errors.New("product name is required")
	ErrInvalidBrand  = errors.New("product brand is required")
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNegativeStock = errors.New("stock cannot be negative")
	ErrPriceAboveMRP = errors.New("sale price cannot exceed mrp")
)

// Product is the catalog view of a purchasable item. Prices are integer cents.
// MRPCents is the original (strike-through) price; a discount is displayed only
// when MRPCents > PriceCents.
type Product struct {
	ID               ID                `json:"id"`
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	Brand            string            `json:"brand"`
	MRPCents         int64             `json:"mrp_cents"`
	PriceCents       int64             `json:"price_cents"`
	Stock            int               `json:"stock"`
	Image            string            `json:"image"`
	Images           []string          `json:"images,omitempty"`
	Description      string            `json:"description,omitempty"`
	ShortDescription string            `json:"short_description,omitempty"`
	Specifications   map[string]string `json:"specifications,omitempty"`
	Features         []string          `json:"features,omitempty"`
	Category         string            `json:"category,omitempty"`
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(p.Brand) == "" {
		return ErrInvalidBrand
	}
	if p.PriceCents < 0 || p.MRPCents < 0 {
		return ErrNegativePrice
	}
	if p.MRPCents > 0 && p.MRPCents < p.PriceCents {
		return ErrPriceAboveMRP
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

func (p *Product) HasDiscount() bool {
	return p.MRPCents > p.PriceCents
}

// DiscountPercent returns the rounded percentage off MRP, 0 when undiscounted.
func (p *Product) DiscountPercent() int {
	if !p.HasDiscount() || p.MRPCents == 0 {
		return 0
	}
	return int(((p.MRPCents-p.PriceCents)*100 + p.MRPCents/2) / p.MRPCents)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL slug used for product pages, matching the scheme
// existing catalog entries were created with.
func Slugify(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// IDSet builds the normalized identifier set used for cart reconciliation.
func IDSet(products []Product) map[ID]struct{} {
	set := make(map[ID]struct{}, len(products))
	for _, p := range products {
		if !p.ID.IsZero() {
			set[p.ID] = struct{}{}
		}
	}
	return set
}
