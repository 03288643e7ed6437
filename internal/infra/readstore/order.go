package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"metromobiles/internal/infra"
	"metromobiles/internal/infra/db"
	"metromobiles/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `
	id, user_id, items, delivery_tier,
	subtotal_cents, tax_cents, delivery_cents, total_cents,
	address, status, created_at`

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) queries.OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (s *OrderReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]queries.OrderView, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	views := make([]queries.OrderView, 0)
	for rows.Next() {
		view, err := scanOrderRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	return views, nil
}

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`,
		id,
	)
	view, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return view, nil
}

func scanOrderRow(row rowScanner) (*queries.OrderView, error) {
	var (
		view    queries.OrderView
		items   []byte
		address []byte
	)
	err := row.Scan(
		&view.ID, &view.UserID, &items, &view.DeliveryTier,
		&view.SubtotalCents, &view.TaxCents, &view.DeliveryCents, &view.TotalCents,
		&address, &view.Status, &view.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &view.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(address, &view.Address); err != nil {
		return nil, err
	}
	return &view, nil
}
