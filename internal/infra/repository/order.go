package repository

import (
	"context"
	"encoding/json"

	"metromobiles/internal/domain/order"
	"metromobiles/internal/infra"
	"metromobiles/internal/infra/db"
	"metromobiles/internal/usecase/shared"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) shared.OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	items, err := json.Marshal(o.Items())
	if err != nil {
		return infra.WrapRepoErr("failed to encode order items", err)
	}
	address, err := json.Marshal(o.Address())
	if err != nil {
		return infra.WrapRepoErr("failed to encode order address", err)
	}

	totals := o.Totals()
	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (
			id, user_id, items, delivery_tier,
			subtotal_cents, tax_cents, delivery_cents, total_cents,
			address, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID(), o.UserID(), items, o.Tier().String(),
		totals.SubtotalCents, totals.TaxCents, totals.DeliveryCents, totals.TotalCents,
		address, string(o.Status()), o.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}
