package domain

import (
	"errors"
	"fmt"
)

// Status enumerates order progression. Wire values are case-sensitive.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

var (
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrIllegalTransition = errors.New("order status transition is not allowed")
	ErrNotPending        = errors.New("order must be pending to checkout")
)

// allowedTransitions lists, per source status, every status it may move to.
// Statuses absent from a set are rejected.
var allowedTransitions = map[Status][]Status{
	StatusPending:        {StatusPendingPayment, StatusPaid, StatusCancelled},
	StatusPendingPayment: {StatusPaid, StatusCancelled},
	StatusPaid:           {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusDelivered},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

var statusColors = map[Status]string{
	StatusPending:        "orange",
	StatusPendingPayment: "gold",
	StatusPaid:           "green",
	StatusShipped:        "blue",
	StatusDelivered:      "teal",
	StatusCancelled:      "red",
}

// Statuses returns every member of the enumeration in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusPendingPayment, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled}
}

// PendingStatuses returns the statuses an order may be checked out from.
func PendingStatuses() []Status {
	return []Status{StatusPending, StatusPendingPayment}
}

// ParseStatus matches raw against the enumeration exactly.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsPending reports whether the status is one of PendingStatuses.
func (s Status) IsPending() bool {
	return s == StatusPending || s == StatusPendingPayment
}

// Color is the display hint rendered alongside the status.
func (s Status) Color() string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return "grey"
}

// CanTransitionTo consults the transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns a copy of the targets reachable from s.
func (s Status) AllowedTransitions() []Status {
	targets := allowedTransitions[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}
