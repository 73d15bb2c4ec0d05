package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	ordermemory "github.com/Apurer/order-management-api/internal/domains/orders/adapters/memory"
	orderapp "github.com/Apurer/order-management-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/order-management-api/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/order-management-api/internal/platform/temporal/activities/orders"
)

func newCheckoutEnv(t *testing.T) (*testsuite.TestWorkflowEnvironment, *orderapp.Service) {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	service := orderapp.NewService(ordermemory.NewRepository())
	acts := orderactivities.NewActivities(service)
	env.RegisterActivityWithOptions(acts.CheckoutOrder, activity.RegisterOptions{Name: orderactivities.CheckoutOrderActivityName})
	return env, service
}

func TestCheckoutWorkflow_PaysPendingOrder(t *testing.T) {
	env, service := newCheckoutEnv(t)
	created, err := service.CreateOrder(context.Background(), orderdomain.OrderInput{ClientName: "Alice", Address: "1 Main St", Phone: "555-1111"})
	require.NoError(t, err)

	env.ExecuteWorkflow(CheckoutWorkflow, orderactivities.CheckoutInput{OrderID: created.ID, TraceID: "trace-1"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var order orderdomain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	require.Equal(t, created.ID, order.ID)
	require.Equal(t, orderdomain.StatusPaid, order.Status)
}

func TestCheckoutWorkflow_FailsFastWhenNotPending(t *testing.T) {
	env, service := newCheckoutEnv(t)
	ctx := context.Background()
	created, err := service.CreateOrder(ctx, orderdomain.OrderInput{ClientName: "Alice", Address: "1 Main St", Phone: "555-1111"})
	require.NoError(t, err)
	_, err = service.Checkout(ctx, created.ID)
	require.NoError(t, err)

	env.ExecuteWorkflow(CheckoutWorkflow, orderactivities.CheckoutInput{OrderID: created.ID})
	require.True(t, env.IsWorkflowCompleted())

	wfErr := env.GetWorkflowError()
	require.Error(t, wfErr)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(wfErr, &appErr))
	require.Equal(t, orderactivities.ErrTypeNotPending, appErr.Type())
	require.ErrorIs(t, orderactivities.FromApplicationError(wfErr), orderdomain.ErrNotPending)
}

func TestCheckoutWorkflow_MissingOrder(t *testing.T) {
	env, _ := newCheckoutEnv(t)

	env.ExecuteWorkflow(CheckoutWorkflow, orderactivities.CheckoutInput{OrderID: 404})
	require.True(t, env.IsWorkflowCompleted())

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(env.GetWorkflowError(), &appErr))
	require.Equal(t, orderactivities.ErrTypeNotFound, appErr.Type())
}

func TestCheckoutWorkflow_StoreFailureIsNotRetried(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	attempts := 0
	env.RegisterActivityWithOptions(func(context.Context, orderactivities.CheckoutInput) (*orderdomain.Order, error) {
		attempts++
		return nil, orderactivities.ToApplicationError(errors.New("dial tcp: connection refused"))
	}, activity.RegisterOptions{Name: orderactivities.CheckoutOrderActivityName})

	env.ExecuteWorkflow(CheckoutWorkflow, orderactivities.CheckoutInput{OrderID: 1})
	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	require.Equal(t, 1, attempts)
}
