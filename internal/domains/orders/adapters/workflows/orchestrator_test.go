package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	oteltrace "go.opentelemetry.io/otel/trace"

	ordermemory "github.com/Apurer/order-management-api/internal/domains/orders/adapters/memory"
	orderapp "github.com/Apurer/order-management-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/order-management-api/internal/domains/orders/domain"
	"github.com/Apurer/order-management-api/internal/domains/orders/ports"
)

func TestInlineCheckout(t *testing.T) {
	service := orderapp.NewService(ordermemory.NewRepository())
	orchestrator := NewInlineCheckout(service)
	ctx := context.Background()

	created, err := service.CreateOrder(ctx, orderdomain.OrderInput{ClientName: "Alice", Address: "1 Main St", Phone: "555-1111"})
	require.NoError(t, err)

	paid, err := orchestrator.Checkout(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, orderdomain.StatusPaid, paid.Status)

	_, err = orchestrator.Checkout(ctx, created.ID)
	require.ErrorIs(t, err, orderapp.ErrInvalidState)

	_, err = orchestrator.Checkout(ctx, 77)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUnconfiguredOrchestrators(t *testing.T) {
	_, err := (*InlineCheckout)(nil).Checkout(context.Background(), 1)
	require.Error(t, err)
	_, err = NewTemporalCheckout(nil).Checkout(context.Background(), 1)
	require.Error(t, err)
}

func TestCheckoutWorkflowID(t *testing.T) {
	require.Equal(t, "order-checkout-42", checkoutWorkflowID(42))
}

func TestWorkflowTraceID(t *testing.T) {
	require.Empty(t, workflowTraceID(context.Background()))

	traceID := oteltrace.TraceID{0x01, 0x02}
	spanCtx := oteltrace.NewSpanContext(oteltrace.SpanContextConfig{TraceID: traceID, SpanID: oteltrace.SpanID{0x03}})
	ctx := oteltrace.ContextWithSpanContext(context.Background(), spanCtx)
	require.Equal(t, traceID.String(), workflowTraceID(ctx))
}
