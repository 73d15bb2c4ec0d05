package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/order-management-api/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/order-management-api/internal/platform/temporal/activities/orders"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "orders.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkouts.
	CheckoutTaskQueue = "ORDER_CHECKOUT"
)

// CheckoutWorkflow moves an order to PAID through the checkout activity.
func CheckoutWorkflow(ctx workflow.Context, input orderactivities.CheckoutInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		// Checkout is not idempotent and runs exactly once.
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var order orderdomain.Order
	if err := workflow.ExecuteActivity(ctx, orderactivities.CheckoutOrderActivityName, input).Get(ctx, &order); err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID, "status", string(order.Status))...)
	return &order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
