package response

import (
	"metromobiles/internal/domain/catalog"

	"github.com/jinzhu/copier"
)

type ProductResponse struct {
	ID               catalog.ID        `json:"id"`
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	Brand            string            `json:"brand"`
	MRPCents         int64             `json:"mrp_cents"`
	PriceCents       int64             `json:"price_cents"`
	Stock            int               `json:"stock"`
	InStock          bool              `json:"in_stock"`
	DiscountPercent  int               `json:"discount_percent,omitempty"`
	Image            string            `json:"image"`
	Images           []string          `json:"images,omitempty"`
	Description      string            `json:"description,omitempty"`
	ShortDescription string            `json:"short_description,omitempty"`
	Specifications   map[string]string `json:"specifications,omitempty"`
	Features         []string          `json:"features,omitempty"`
	Category         string            `json:"category,omitempty"`
}

func FromProduct(p *catalog.Product) ProductResponse {
	var resp ProductResponse
	_ = copier.Copy(&resp, p)
	resp.InStock = p.InStock()
	resp.DiscountPercent = p.DiscountPercent()
	return resp
}

func FromProductList(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, FromProduct(&products[i]))
	}
	return out
}
