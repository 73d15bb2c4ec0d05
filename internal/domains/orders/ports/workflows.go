package ports

import (
	"context"

	"github.com/Apurer/order-management-api/internal/domains/orders/domain"
)

// CheckoutOrchestrator runs the checkout use case, inline or on a workflow engine.
type CheckoutOrchestrator interface {
	Checkout(ctx context.Context, id int64) (*domain.Order, error)
}
