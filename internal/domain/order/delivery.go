package order

import "errors"

var ErrUnknownDeliveryTier = errors.New("unknown delivery tier")

// DeliveryTier is a named shipping speed with a flat fee.
type DeliveryTier string

const (
	TierStandard  DeliveryTier = "standard"
	TierExpress   DeliveryTier = "express"
	TierOvernight DeliveryTier = "overnight"
)

var deliveryFeeCents = map[DeliveryTier]int64{
	TierStandard:  1000,
	TierExpress:   2500,
	TierOvernight: 4500,
}

func NewDeliveryTier(s string) (DeliveryTier, error) {
	t := DeliveryTier(s)
	if _, ok := deliveryFeeCents[t]; !ok {
		return "", ErrUnknownDeliveryTier
	}
	return t, nil
}

func (t DeliveryTier) String() string {
	return string(t)
}

func (t DeliveryTier) FeeCents() int64 {
	return deliveryFeeCents[t]
}
