package ports

import (
	"context"
	"time"

	"github.com/Apurer/order-management-api/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	ListPendingByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, input domain.OrderInput) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	TransitionOrder(ctx context.Context, id int64, target domain.Status) (*domain.Order, error)
	Checkout(ctx context.Context, id int64) (*domain.Order, error)
}
