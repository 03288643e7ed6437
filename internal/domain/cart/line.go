package cart

import (
	"metromobiles/internal/domain/catalog"
)

// Line is one product entry in a cart. Name, brand, price and image are a
// denormalized snapshot taken at add-time; only the stock ceiling is refreshed
// from the live catalog afterwards.
type Line struct {
	ProductID  catalog.ID `json:"id"`
	Name       string     `json:"name"`
	Brand      string     `json:"brand"`
	PriceCents int64      `json:"price_cents"`
	Image      string     `json:"image"`
	Quantity   int        `json:"quantity"`
	MaxStock   int        `json:"max_stock"`
}

func (l Line) SubtotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}

type Lines []Line

func (ls Lines) Find(id catalog.ID) (int, bool) {
	for i := range ls {
		if ls[i].ProductID == id {
			return i, true
		}
	}
	return -1, false
}

func (ls Lines) TotalQuantity() int {
	total := 0
	for _, l := range ls {
		total += l.Quantity
	}
	return total
}

func (ls Lines) SubtotalCents() int64 {
	var total int64
	for _, l := range ls {
		total += l.SubtotalCents()
	}
	return total
}

func NewLine(p *catalog.Product, quantity int) Line {
	if quantity > p.Stock {
		quantity = p.Stock
	}
	return Line{
		ProductID:  p.ID,
		Name:       p.Name,
		Brand:      p.Brand,
		PriceCents: p.PriceCents,
		Image:      p.Image,
		Quantity:   quantity,
		MaxStock:   p.Stock,
	}
}
