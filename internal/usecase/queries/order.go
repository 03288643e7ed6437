package queries

import (
	"context"

	"metromobiles/internal/infra"
	"metromobiles/internal/pkg/errs"

	"github.com/google/uuid"
)

// 他人の注文は存在しない扱いにするため、アクセス拒否の区別は持たない
var ErrOrderNotFound = errs.New("order not found")

type OrderReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
}

type OrderQueries interface {
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderView, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

func (q *orderQueriesImpl) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error) {
	return q.readStore.ListByUser(ctx, userID)
}

func (q *orderQueriesImpl) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderView, error) {
	view, err := q.readStore.FindByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if view.UserID != userID {
		// Orders are private; an order that is not yours does not exist.
		return nil, ErrOrderNotFound
	}
	return view, nil
}
