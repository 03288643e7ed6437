package commands

import (
	"context"

	"metromobiles/internal/domain/cart"
	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/domain/order"
	"metromobiles/internal/infra"
	"metromobiles/internal/pkg/clock"
	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/usecase/queries"
	"metromobiles/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmptyOrder        = errs.New("order has no items")
	ErrInsufficientStock = errs.New("insufficient stock")
	ErrInvalidOrder      = errs.New("invalid order")
)

type OrderItemInput struct {
	ProductID catalog.ID
	Quantity  int
}

type PlaceOrderInput struct {
	Items        []OrderItemInput
	DeliveryTier string
	Address      order.Address
}

type OrderCommands interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*queries.OrderView, error)
}

type orderCommandsImpl struct {
	uow shared.UnitOfWork
	clk clock.Clock
}

func NewOrderCommands(uow shared.UnitOfWork, clk clock.Clock) OrderCommands {
	return &orderCommandsImpl{uow: uow, clk: clk}
}

// PlaceOrder reprices every line from the live catalog, locks the product rows,
// decrements stock, and stores the order in one transaction. Client-sent
// prices are never trusted.
func (c *orderCommandsImpl) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*queries.OrderView, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	tier, err := order.NewDeliveryTier(input.DeliveryTier)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidOrder)
	}

	var placed *order.Order
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		lines := make(cart.Lines, 0, len(input.Items))
		for _, item := range input.Items {
			if item.Quantity < 1 {
				return errs.Mark(errs.New("quantity must be at least 1"), ErrInvalidOrder)
			}
			p, err := tx.Products().FindForUpdate(ctx, item.ProductID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrProductNotFound)
				}
				return err
			}
			if p.Stock < item.Quantity {
				return ErrInsufficientStock
			}
			lines = append(lines, cart.Line{
				ProductID:  p.ID,
				Name:       p.Name,
				Brand:      p.Brand,
				PriceCents: p.PriceCents,
				Image:      p.Image,
				Quantity:   item.Quantity,
				MaxStock:   p.Stock,
			})
			if err := tx.Products().DecrementStock(ctx, p.ID, item.Quantity); err != nil {
				return err
			}
		}

		o, err := order.New(userID, lines, tier, input.Address, c.clk.Now())
		if err != nil {
			return errs.Mark(err, ErrInvalidOrder)
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	totals := placed.Totals()
	return &queries.OrderView{
		ID:            placed.ID(),
		UserID:        placed.UserID(),
		Items:         placed.Items(),
		DeliveryTier:  placed.Tier().String(),
		SubtotalCents: totals.SubtotalCents,
		TaxCents:      totals.TaxCents,
		DeliveryCents: totals.DeliveryCents,
		TotalCents:    totals.TotalCents,
		Address:       placed.Address(),
		Status:        string(placed.Status()),
		CreatedAt:     placed.CreatedAt(),
	}, nil
}
