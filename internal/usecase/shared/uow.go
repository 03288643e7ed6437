package shared

import (
	"context"

	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/domain/order"
	"metromobiles/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork runs a function inside a database transaction; the Tx hands out
// write repositories bound to that transaction.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Products() ProductRepository
	Users() UserRepository
	Orders() OrderRepository
}

type ProductRepository interface {
	Create(ctx context.Context, p *catalog.Product) error
	Update(ctx context.Context, p *catalog.Product) error
	Delete(ctx context.Context, id catalog.ID) error
	// FindForUpdate locks the product row for the stock decrement at checkout.
	FindForUpdate(ctx context.Context, id catalog.ID) (*catalog.Product, error)
	DecrementStock(ctx context.Context, id catalog.ID, qty int) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	LinkGoogle(ctx context.Context, id uuid.UUID, googleID, picture string) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
}
