// Package checkout drives the order placement flow: session gate, cart
// reconciliation, totals, and the order API call.
package checkout

import (
	"context"
	"encoding/json"

	domcart "metromobiles/internal/domain/cart"
	"metromobiles/internal/domain/order"
	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/storefront/apiclient"
	"metromobiles/internal/storefront/cart"
	"metromobiles/internal/storefront/catalog"
	"metromobiles/internal/storefront/session"
)

type Checkout struct {
	session    *session.Handshake
	carts      *cart.Store
	reconciler *cart.Reconciler
	accessor   *catalog.Accessor
	api        *apiclient.Client
}

func New(sess *session.Handshake, carts *cart.Store, reconciler *cart.Reconciler, accessor *catalog.Accessor, api *apiclient.Client) *Checkout {
	return &Checkout{
		session:    sess,
		carts:      carts,
		reconciler: reconciler,
		accessor:   accessor,
		api:        api,
	}
}

// Summary is the cart-page view: reconciled lines plus totals under the
// cart-summary pricing policy (standard shipping, waived on an empty cart).
type Summary struct {
	Lines   domcart.Lines
	Totals  order.Totals
	Removed int
}

func (c *Checkout) Summary(ctx context.Context) (*Summary, error) {
	products := c.accessor.Fetch(ctx)
	lines, removed, err := c.reconciler.Run(ctx, products)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Lines:   lines,
		Totals:  order.ComputeTotals(lines, order.TierStandard, order.ContextCartSummary),
		Removed: removed,
	}, nil
}

// Quote prices the checkout page for a delivery tier: the tier fee is always
// charged once an order is being placed.
func (c *Checkout) Quote(lines domcart.Lines, tier order.DeliveryTier) order.Totals {
	return order.ComputeTotals(lines, tier, order.ContextCheckout)
}

// PlaceOrder submits the current cart. The session must be active; a missing
// or expired session leaves a redirect marker so checkout resumes after login.
// On transport failure nothing is cleared, so the cart survives for a retry.
func (c *Checkout) PlaceOrder(ctx context.Context, tier order.DeliveryTier, addr order.Address) (*apiclient.OrderView, error) {
	if !c.session.Valid(ctx) {
		c.session.SetCheckoutRedirect(ctx)
		return nil, errs.ErrNotLoggedIn
	}
	sess := c.session.Current()

	products := c.accessor.Fetch(ctx)
	lines, _, err := c.reconciler.Run(ctx, products)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.ErrEmptyCart
	}

	addrJSON, err := json.Marshal(addr)
	if err != nil {
		return nil, err
	}

	req := apiclient.PlaceOrderRequest{
		Items:        toOrderLines(lines),
		DeliveryTier: tier.String(),
		Address:      addrJSON,
	}

	view, err := c.api.PlaceOrder(ctx, sess.Token, req)
	if err != nil {
		return nil, err
	}

	if err := c.carts.Clear(ctx); err != nil {
		return view, err
	}
	return view, nil
}

func toOrderLines(lines domcart.Lines) []apiclient.OrderLine {
	out := make([]apiclient.OrderLine, len(lines))
	for i, l := range lines {
		out[i] = apiclient.OrderLine{
			ProductID:  l.ProductID,
			Name:       l.Name,
			Brand:      l.Brand,
			PriceCents: l.PriceCents,
			Image:      l.Image,
			Quantity:   l.Quantity,
		}
	}
	return out
}
