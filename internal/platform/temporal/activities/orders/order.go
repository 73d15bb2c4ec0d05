package orders

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/Apurer/order-management-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/order-management-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/order-management-api/internal/domains/orders/ports"
)

const (
	// CheckoutOrderActivityName moves a pending order to PAID.
	CheckoutOrderActivityName = "orders.activities.CheckoutOrder"
)

// Application error types carried across the workflow boundary.
const (
	ErrTypeNotFound     = "OrderNotFound"
	ErrTypeNotPending   = "OrderNotPending"
	ErrTypeInvalidState = "OrderInvalidState"
	ErrTypeInvalidInput = "OrderInvalidInput"
)

// CheckoutInput identifies the order to check out.
type CheckoutInput struct {
	OrderID int64
	TraceID string
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// CheckoutOrder runs the checkout use case. Domain rejections are returned as
// non-retryable application errors so the workflow fails fast.
func (a *Activities) CheckoutOrder(ctx context.Context, input CheckoutInput) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("checkout activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("checkout activity not initialized")
	}
	logger.Info("CheckoutOrder activity started", "orderId", input.OrderID)
	order, err := a.service.Checkout(ctx, input.OrderID)
	if err != nil {
		logger.Error("CheckoutOrder activity failed", "orderId", input.OrderID, "error", err)
		return nil, ToApplicationError(err)
	}
	logger.Info("CheckoutOrder activity completed", "orderId", order.ID, "status", string(order.Status))
	return order, nil
}

// ToApplicationError marks domain failures as non-retryable. Anything else is
// returned unchanged and retried under the activity retry policy.
func ToApplicationError(err error) error {
	errType := ""
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orderports.ErrNotFound):
		errType = ErrTypeNotFound
	case errors.Is(err, orderdomain.ErrNotPending):
		errType = ErrTypeNotPending
	case errors.Is(err, orderapp.ErrInvalidState):
		errType = ErrTypeInvalidState
	case errors.Is(err, orderapp.ErrInvalidInput):
		errType = ErrTypeInvalidInput
	default:
		return err
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), errType, err)
}

// FromApplicationError restores the sentinel errors callers match on after a
// workflow run has failed.
func FromApplicationError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case ErrTypeNotFound:
		return fmt.Errorf("%w: %s", orderports.ErrNotFound, appErr.Message())
	case ErrTypeNotPending:
		return fmt.Errorf("%w: %w", orderapp.ErrInvalidState, orderdomain.ErrNotPending)
	case ErrTypeInvalidState:
		return fmt.Errorf("%w: %s", orderapp.ErrInvalidState, appErr.Message())
	case ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", orderapp.ErrInvalidInput, appErr.Message())
	default:
		return err
	}
}
