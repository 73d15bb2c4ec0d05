package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/order-management-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders and answers the filter queries.
// Save assigns an identifier when order.ID is zero.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]*domain.Order, error)
	Ping(ctx context.Context) error
}

// Filter narrows List. Zero-valued fields do not constrain the result.
// CreatedFrom is inclusive, CreatedBefore exclusive.
type Filter struct {
	Statuses      []domain.Status
	OwnerUserID   int64
	CreatedFrom   time.Time
	CreatedBefore time.Time
}

// Matches applies the filter to a single order, for stores that filter in process.
func (f Filter) Matches(order *domain.Order) bool {
	if order == nil {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, status := range f.Statuses {
			if order.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.OwnerUserID != 0 && order.OwnerUserID != f.OwnerUserID {
		return false
	}
	if !f.CreatedFrom.IsZero() && order.CreatedAt.Before(f.CreatedFrom) {
		return false
	}
	if !f.CreatedBefore.IsZero() && !order.CreatedAt.Before(f.CreatedBefore) {
		return false
	}
	return true
}
