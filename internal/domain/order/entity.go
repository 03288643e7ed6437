package order

import (
	"errors"
	"time"

	"metromobiles/internal/domain/cart"

	"github.com/google/uuid"
)

var (
	ErrNoItems   = errors.New("order has no items")
	ErrNoAddress = errors.New("order has no delivery address")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Address is a saved delivery address. IDs are opaque strings so addresses
// created by the legacy store (timestamp ids) stay addressable.
type Address struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

// Order is immutable once created: the items are a snapshot of the cart at the
// moment of purchase and the totals are fixed at placement time.
type Order struct {
	id        uuid.UUID
	userID    uuid.UUID
	items     cart.Lines
	tier      DeliveryTier
	totals    Totals
	address   Address
	status    Status
	createdAt time.Time
}

func New(userID uuid.UUID, items cart.Lines, tier DeliveryTier, address Address, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if address.Street == "" || address.City == "" {
		return nil, ErrNoAddress
	}

	snapshot := make(cart.Lines, len(items))
	copy(snapshot, items)

	return &Order{
		id:        uuid.New(),
		userID:    userID,
		items:     snapshot,
		tier:      tier,
		totals:    ComputeTotals(snapshot, tier, ContextCheckout),
		address:   address,
		status:    StatusPending,
		createdAt: now,
	}, nil
}

func (o *Order) ID() uuid.UUID       { return o.id }
func (o *Order) UserID() uuid.UUID   { return o.userID }
func (o *Order) Items() cart.Lines   { return o.items }
func (o *Order) Tier() DeliveryTier  { return o.tier }
func (o *Order) Totals() Totals      { return o.totals }
func (o *Order) Address() Address    { return o.address }
func (o *Order) Status() Status      { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
