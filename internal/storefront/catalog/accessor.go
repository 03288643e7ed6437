// Package catalog fetches the product listing the storefront renders and
// reconciles carts against.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"

	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/storefront/kv"
)

// SnapshotKey is the blob the last known catalog is cached under.
const SnapshotKey = "metromobiles_products"

type Remote interface {
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
}

// Accessor resolves the current catalog with a fallback chain: remote API,
// then the cached snapshot, then the built-in default set. It never fails;
// the worst case is the default listing.
//
// A successful remote fetch is NOT cached implicitly. Callers that want the
// snapshot refreshed call SaveSnapshot; the accessor owns the cache format,
// the caller owns the caching decision.
type Accessor struct {
	remote Remote
	store  kv.Store
	logger *slog.Logger
}

func NewAccessor(remote Remote, store kv.Store, logger *slog.Logger) *Accessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accessor{remote: remote, store: store, logger: logger}
}

func (a *Accessor) Fetch(ctx context.Context) []catalog.Product {
	products, err := a.remote.FetchProducts(ctx)
	if err == nil && len(products) > 0 {
		return products
	}
	if err != nil {
		a.logger.Warn("remote catalog unavailable, falling back to snapshot", "error", err.Error())
	}

	if cached := a.loadSnapshot(ctx); len(cached) > 0 {
		return cached
	}

	return DefaultProducts()
}

func (a *Accessor) SaveSnapshot(ctx context.Context, products []catalog.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, SnapshotKey, data)
}

func (a *Accessor) loadSnapshot(ctx context.Context) []catalog.Product {
	data, err := a.store.Get(ctx, SnapshotKey)
	if err != nil {
		return nil
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		// Corrupt snapshot counts as absent.
		a.logger.Warn("discarding corrupt catalog snapshot", "error", err.Error())
		return nil
	}
	return products
}
