package request

import (
	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/domain/order"
	"metromobiles/internal/usecase/commands"
)

type OrderItemRequest struct {
	ProductID catalog.ID `json:"id" binding:"required"`
	Quantity  int        `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryTier string             `json:"delivery_tier" binding:"required"`
	Address      AddressRequest     `json:"address" binding:"required"`
}

type AddressRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Street    string `json:"street" binding:"required"`
	Apartment string `json:"apartment"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

func (r *PlaceOrderRequest) ToInput() commands.PlaceOrderInput {
	items := make([]commands.OrderItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, commands.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return commands.PlaceOrderInput{
		Items:        items,
		DeliveryTier: r.DeliveryTier,
		Address: order.Address{
			Name:      r.Address.Name,
			Phone:     r.Address.Phone,
			Street:    r.Address.Street,
			Apartment: r.Address.Apartment,
			City:      r.Address.City,
			State:     r.Address.State,
			Zip:       r.Address.Zip,
			Country:   r.Address.Country,
		},
	}
}
