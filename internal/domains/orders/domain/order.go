package domain

import (
	"fmt"
	"strings"
	"time"
)

// Order models a customer purchase order and its lifecycle status.
type Order struct {
	ID               int64
	ClientName       string
	Address          string
	Phone            string
	Status           Status
	OwnerUserID      int64
	DeliveryPersonID *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderInput carries the client-editable attributes of an order.
// Status is only honoured by updates, and only through the transition table.
type OrderInput struct {
	ClientName       string
	Address          string
	Phone            string
	OwnerUserID      int64
	DeliveryPersonID *int64
	Status           Status
}

// Normalize trims descriptive fields in place.
func (in *OrderInput) Normalize() {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
}

// Validate reports every missing or malformed field at once.
func (in OrderInput) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(in.ClientName) == "" {
		errs = append(errs, FieldError{Field: "clientName", Err: ErrClientNameRequired})
	}
	if strings.TrimSpace(in.Address) == "" {
		errs = append(errs, FieldError{Field: "address", Err: ErrAddressRequired})
	}
	if strings.TrimSpace(in.Phone) == "" {
		errs = append(errs, FieldError{Field: "phone", Err: ErrPhoneRequired})
	}
	if in.OwnerUserID < 0 {
		errs = append(errs, FieldError{Field: "userId", Err: ErrInvalidOwner})
	}
	if in.DeliveryPersonID != nil && *in.DeliveryPersonID <= 0 {
		errs = append(errs, FieldError{Field: "deliveryPersonId", Err: ErrInvalidDeliveryPerson})
	}
	if in.Status != "" && !in.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Err: ErrInvalidStatus})
	}
	return errs.orNil()
}

// NewOrder validates input and builds a PENDING order. Any status carried by
// the input is ignored; the identifier is left for the store to assign.
func NewOrder(input OrderInput, createdAt time.Time) (*Order, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	createdAt = createdAt.UTC()
	return &Order{
		ClientName:       input.ClientName,
		Address:          input.Address,
		Phone:            input.Phone,
		Status:           StatusPending,
		OwnerUserID:      input.OwnerUserID,
		DeliveryPersonID: cloneID(input.DeliveryPersonID),
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if !o.Status.IsValid() {
		return ErrInvalidStatus
	}
	return OrderInput{
		ClientName:       o.ClientName,
		Address:          o.Address,
		Phone:            o.Phone,
		OwnerUserID:      o.OwnerUserID,
		DeliveryPersonID: o.DeliveryPersonID,
	}.Validate()
}

// Apply overwrites the mutable attributes. A status that differs from the
// current one is routed through TransitionTo; the same status is a no-op.
func (o *Order) Apply(input OrderInput) error {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return err
	}
	if input.Status != "" && input.Status != o.Status {
		if err := o.TransitionTo(input.Status); err != nil {
			return err
		}
	}
	o.ClientName = input.ClientName
	o.Address = input.Address
	o.Phone = input.Phone
	o.OwnerUserID = input.OwnerUserID
	o.DeliveryPersonID = cloneID(input.DeliveryPersonID)
	return nil
}

// TransitionTo moves the order to target when the transition table allows it.
// The order is left untouched on failure.
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	if !o.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.Status, target)
	}
	o.Status = target
	return nil
}

// Checkout marks a pending order as PAID.
func (o *Order) Checkout() error {
	if !o.Status.IsPending() {
		return fmt.Errorf("%w (current status %s)", ErrNotPending, o.Status)
	}
	return o.TransitionTo(StatusPaid)
}

// Clone returns a deep copy safe to hand across adapter boundaries.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.DeliveryPersonID = cloneID(o.DeliveryPersonID)
	return &clone
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
