package cart

import (
	"context"

	"metromobiles/internal/domain/cart"
	"metromobiles/internal/domain/catalog"
)

// Reconciler strips cart lines whose product has left the catalog. It runs
// after every catalog fetch on every page that shows or mutates the cart;
// without it, deleting a product leaves ghost line items behind forever.
type Reconciler struct {
	store *Store
}

func NewReconciler(store *Store) *Reconciler {
	return &Reconciler{store: store}
}

// Run loads the cart, drops lines referencing unknown products, and persists
// the result only when something was removed. Reconciling an already-valid
// cart is a no-op.
func (r *Reconciler) Run(ctx context.Context, products []catalog.Product) (cart.Lines, int, error) {
	lines := r.store.Load(ctx)
	if len(lines) == 0 {
		return lines, 0, nil
	}

	valid, removed := cart.Reconcile(lines, catalog.IDSet(products))
	if removed == 0 {
		return valid, 0, nil
	}

	if err := r.store.Save(ctx, valid); err != nil {
		return valid, removed, err
	}
	return valid, removed, nil
}
