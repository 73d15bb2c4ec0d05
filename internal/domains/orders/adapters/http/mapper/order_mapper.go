package mapper

import (
	"time"

	orderdomain "github.com/Apurer/order-management-api/internal/domains/orders/domain"
)

// Order is the JSON representation returned by the order endpoints.
type Order struct {
	ID               int64     `json:"id"`
	ClientName       string    `json:"clientName"`
	Address          string    `json:"address"`
	Phone            string    `json:"phone"`
	Status           string    `json:"status"`
	StatusColor      string    `json:"statusColor"`
	UserID           int64     `json:"userId"`
	CreatedDate      time.Time `json:"createdDate"`
	DeliveryPersonID *int64    `json:"deliveryPersonId,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// OrderPayload is the request body accepted by create and update.
// Server-assigned fields (id, createdDate) are not part of it.
type OrderPayload struct {
	ClientName       string `json:"clientName"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Status           string `json:"status,omitempty"`
	UserID           int64  `json:"userId"`
	DeliveryPersonID *int64 `json:"deliveryPersonId,omitempty"`
}

// TransitionRequest carries the target status for a guarded transition.
type TransitionRequest struct {
	Status string `json:"status"`
}

// ToOrderInput converts a request payload into the domain input.
func ToOrderInput(payload OrderPayload) orderdomain.OrderInput {
	return orderdomain.OrderInput{
		ClientName:       payload.ClientName,
		Address:          payload.Address,
		Phone:            payload.Phone,
		OwnerUserID:      payload.UserID,
		DeliveryPersonID: payload.DeliveryPersonID,
		Status:           orderdomain.Status(payload.Status),
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	var courier *int64
	if order.DeliveryPersonID != nil {
		id := *order.DeliveryPersonID
		courier = &id
	}
	return Order{
		ID:               order.ID,
		ClientName:       order.ClientName,
		Address:          order.Address,
		Phone:            order.Phone,
		Status:           string(order.Status),
		StatusColor:      order.Status.Color(),
		UserID:           order.OwnerUserID,
		CreatedDate:      order.CreatedAt,
		DeliveryPersonID: courier,
		UpdatedAt:        order.UpdatedAt,
	}
}

// FromDomainOrders maps a list, always returning a non-nil slice.
func FromDomainOrders(orders []*orderdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		if order == nil {
			continue
		}
		out = append(out, FromDomainOrder(order))
	}
	return out
}
