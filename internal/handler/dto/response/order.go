package response

import (
	"time"

	"metromobiles/internal/domain/cart"
	"metromobiles/internal/domain/order"
	"metromobiles/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderResponse struct {
	ID            uuid.UUID     `json:"id"`
	Items         cart.Lines    `json:"items"`
	DeliveryTier  string        `json:"delivery_tier"`
	SubtotalCents int64         `json:"subtotal_cents"`
	TaxCents      int64         `json:"tax_cents"`
	DeliveryCents int64         `json:"delivery_cents"`
	TotalCents    int64         `json:"total_cents"`
	Address       order.Address `json:"address"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

func FromOrderView(view *queries.OrderView) OrderResponse {
	var resp OrderResponse
	_ = copier.Copy(&resp, view)
	return resp
}

func FromOrderList(views []queries.OrderView) []OrderResponse {
	out := make([]OrderResponse, 0, len(views))
	for i := range views {
		out = append(out, FromOrderView(&views[i]))
	}
	return out
}
