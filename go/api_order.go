package orderserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"

	orderhttpmapper "github.com/Apurer/order-management-api/internal/domains/orders/adapters/http/mapper"
	orderdomain "github.com/Apurer/order-management-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/order-management-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/order-management-api/internal/shared/errors"
)

// HeaderDegraded marks a list response served empty because the store failed.
const HeaderDegraded = "X-Orders-Degraded"

// OrderAPI wires HTTP transport with the orders bounded context.
type OrderAPI struct {
	service   orderports.Service
	checkout  orderports.CheckoutOrchestrator
	responder *apierrors.ChainedResponder
	logger    *slog.Logger
}

type OrderAPIOption func(*OrderAPI)

// WithCheckoutOrchestrator routes checkout through a workflow engine.
func WithCheckoutOrchestrator(checkout orderports.CheckoutOrchestrator) OrderAPIOption {
	return func(api *OrderAPI) {
		if checkout != nil {
			api.checkout = checkout
		}
	}
}

func WithLogger(logger *slog.Logger) OrderAPIOption {
	return func(api *OrderAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service orderports.Service, opts ...OrderAPIOption) OrderAPI {
	api := OrderAPI{
		service:   service,
		responder: newOrderResponder(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&api)
		}
	}
	return api
}

// Get /orders
// Lists every order
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /orders/:id
// Finds an order by ID
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := api.bindOrderID(c)
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.respondError(c, err)
		return
	}
	if order == nil {
		api.responder.Respond(c, apierrors.NewNotFoundProblem("order", id))
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /orders/status/:status
// Finds orders with the given status
func (api *OrderAPI) ListOrdersByStatus(c *gin.Context) {
	var raw string
	if err := runtime.BindStyledParameterWithLocation("simple", false, "status", runtime.ParamLocationPath, c.Param("status"), &raw); err != nil {
		api.responder.BadRequest(c, "invalid status parameter")
		return
	}
	status, err := orderdomain.ParseStatus(raw)
	if err != nil {
		api.respondError(c, err)
		return
	}
	orders, err := api.service.ListByStatus(c.Request.Context(), status)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /orders/date-range?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
// Finds orders created between two calendar dates, both inclusive
func (api *OrderAPI) ListOrdersByDateRange(c *gin.Context) {
	query := c.Request.URL.Query()
	var start, end types.Date
	if err := runtime.BindQueryParameter("form", true, true, "startDate", query, &start); err != nil {
		api.responder.BadRequest(c, "startDate is required in YYYY-MM-DD format")
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "endDate", query, &end); err != nil {
		api.responder.BadRequest(c, "endDate is required in YYYY-MM-DD format")
		return
	}
	orders, err := api.service.ListByDateRange(c.Request.Context(), start.Time, end.Time)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /orders/user/:userId
// Lists the orders of a user. A failing store yields an empty list flagged
// with the X-Orders-Degraded header instead of an error status.
func (api *OrderAPI) ListOrdersByUser(c *gin.Context) {
	userID, ok := api.bindUserID(c)
	if !ok {
		return
	}
	orders, err := api.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		api.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "serving degraded order list",
			requestLogAttrs(c, slog.Int64("user.id", userID), slog.String("error", err.Error()))...)
		c.Header(HeaderDegraded, "true")
		c.JSON(http.StatusOK, []orderhttpmapper.Order{})
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /orders/user/:userId/pending
// Lists the orders of a user that still await payment
func (api *OrderAPI) ListPendingOrdersByUser(c *gin.Context) {
	userID, ok := api.bindUserID(c)
	if !ok {
		return
	}
	orders, err := api.service.ListPendingByUser(c.Request.Context(), userID)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Post /orders
// Creates a new order in PENDING status
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, "request body must be a valid order JSON document")
		return
	}
	created, err := api.service.CreateOrder(c.Request.Context(), orderhttpmapper.ToOrderInput(payload))
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+formatID(created.ID))
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(created))
}

// Put /orders/:id
// Replaces the mutable fields of an order
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	id, ok := api.bindOrderID(c)
	if !ok {
		return
	}
	var payload orderhttpmapper.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, "request body must be a valid order JSON document")
		return
	}
	updated, err := api.service.UpdateOrder(c.Request.Context(), id, orderhttpmapper.ToOrderInput(payload))
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(updated))
}

// Delete /orders/:id
// Deletes an order
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := api.bindOrderID(c)
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		api.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /orders/:id/checkout
// Pays a pending order. Every failure is reported as 400.
func (api *OrderAPI) CheckoutOrder(c *gin.Context) {
	id, ok := api.bindOrderID(c)
	if !ok {
		return
	}
	paid, err := api.runCheckout(c.Request.Context(), id)
	if err != nil {
		api.logFailure(c, "checkout failed", err, slog.Int64("order.id", id))
		api.responder.Respond(c, checkoutProblem(api.responder, err))
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(paid))
}

func (api *OrderAPI) runCheckout(ctx context.Context, id int64) (*orderdomain.Order, error) {
	if api.checkout != nil {
		return api.checkout.Checkout(ctx, id)
	}
	return api.service.Checkout(ctx, id)
}

// Post /orders/:id/transitions
// Moves an order to another status if the lifecycle allows it
func (api *OrderAPI) TransitionOrder(c *gin.Context) {
	id, ok := api.bindOrderID(c)
	if !ok {
		return
	}
	var payload orderhttpmapper.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, "request body must contain a target status")
		return
	}
	target, err := orderdomain.ParseStatus(payload.Status)
	if err != nil {
		api.respondError(c, err)
		return
	}
	updated, err := api.service.TransitionOrder(c.Request.Context(), id, target)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(updated))
}

func (api *OrderAPI) bindOrderID(c *gin.Context) (int64, bool) {
	return api.bindInt64Path(c, "id")
}

func (api *OrderAPI) bindUserID(c *gin.Context) (int64, bool) {
	return api.bindInt64Path(c, "userId")
}

func (api *OrderAPI) bindInt64Path(c *gin.Context, name string) (int64, bool) {
	var value int64
	if err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &value); err != nil {
		api.responder.BadRequest(c, name+" must be an integer")
		return 0, false
	}
	return value, true
}

func (api *OrderAPI) respondError(c *gin.Context, err error) {
	if _, ok := api.responder.Map(err); !ok {
		api.logFailure(c, "order request failed", err)
	}
	api.responder.RespondError(c, err)
}

func (api *OrderAPI) logFailure(c *gin.Context, msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", err.Error()))
	api.logger.LogAttrs(c.Request.Context(), slog.LevelError, msg, requestLogAttrs(c, attrs...)...)
}
