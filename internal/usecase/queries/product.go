package queries

import (
	"context"

	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/infra"
	"metromobiles/internal/pkg/errs"
)

var ErrProductNotFound = errs.New("product not found")

type ProductReadStore interface {
	List(ctx context.Context, filter ProductFilter) ([]catalog.Product, error)
	// FindByID resolves either a normalized id or a slug, matching how
	// product links address products.
	FindByID(ctx context.Context, id catalog.ID) (*catalog.Product, error)
}

type ProductQueries interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id catalog.ID) (*catalog.Product, error)
}

type productQueriesImpl struct {
	readStore ProductReadStore
}

func NewProductQueries(readStore ProductReadStore) ProductQueries {
	return &productQueriesImpl{readStore: readStore}
}

func (q *productQueriesImpl) ListProducts(ctx context.Context, filter ProductFilter) ([]catalog.Product, error) {
	return q.readStore.List(ctx, filter)
}

func (q *productQueriesImpl) GetProduct(ctx context.Context, id catalog.ID) (*catalog.Product, error) {
	product, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
