package queries

import (
	"time"

	"metromobiles/internal/domain/cart"
	"metromobiles/internal/domain/order"

	"github.com/google/uuid"
)

type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Picture   string     `json:"picture,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"-"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type OrderView struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"-"`
	Items         cart.Lines         `json:"items"`
	DeliveryTier  string             `json:"delivery_tier"`
	SubtotalCents int64              `json:"subtotal_cents"`
	TaxCents      int64              `json:"tax_cents"`
	DeliveryCents int64              `json:"delivery_cents"`
	TotalCents    int64              `json:"total_cents"`
	Address       order.Address      `json:"address"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ProductFilter narrows and orders the catalog listing (search page behavior).
type ProductFilter struct {
	Brand string
	Query string
	Sort  ProductSort
}

type ProductSort string

const (
	SortNone      ProductSort = ""
	SortPriceLow  ProductSort = "price-low"
	SortPriceHigh ProductSort = "price-high"
	SortName      ProductSort = "name"
)

func NewProductSort(s string) ProductSort {
	switch ProductSort(s) {
	case SortPriceLow, SortPriceHigh, SortName:
		return ProductSort(s)
	default:
		return SortNone
	}
}
