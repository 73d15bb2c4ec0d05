package ports

import (
	"context"
	"time"

	"github.com/Apurer/order-management-api/internal/domains/orders/domain"
)

// EventType names a lifecycle event.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderDeleted       EventType = "order.deleted"
)

// Event describes one persisted lifecycle change.
type Event struct {
	Type       EventType     `json:"type"`
	OrderID    int64         `json:"orderId"`
	UserID     int64         `json:"userId,omitempty"`
	FromStatus domain.Status `json:"fromStatus,omitempty"`
	ToStatus   domain.Status `json:"toStatus,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// EventPublisher fans lifecycle events out to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(context.Context, Event) error { return nil }

// NoopEventPublisher discards every event.
var NoopEventPublisher EventPublisher = noopEventPublisher{}
