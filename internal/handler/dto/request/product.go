package request

import (
	"mime/multipart"

	"metromobiles/internal/usecase/commands"
)

// ProductForm binds the multipart form of a product write. Prices arrive in
// cents; specifications and features are JSON-encoded string fields.
type ProductForm struct {
	Name             string                  `form:"name" binding:"required"`
	Brand            string                  `form:"brand" binding:"required"`
	MRPCents         int64                   `form:"mrp_cents"`
	PriceCents       int64                   `form:"price_cents" binding:"required"`
	Stock            int                     `form:"stock"`
	Description      string                  `form:"description"`
	ShortDescription string                  `form:"short_description"`
	Category         string                  `form:"category"`
	Specifications   string                  `form:"specifications"`
	Features         string                  `form:"features"`
	Images           []*multipart.FileHeader `form:"images"`
}

func (r *ProductForm) ToInput() commands.ProductInput {
	return commands.ProductInput{
		Name:             r.Name,
		Brand:            r.Brand,
		MRPCents:         r.MRPCents,
		PriceCents:       r.PriceCents,
		Stock:            r.Stock,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Category:         r.Category,
		Specifications:   r.Specifications,
		Features:         r.Features,
		Images:           r.Images,
	}
}
