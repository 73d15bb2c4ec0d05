package orderserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// BasePaths lists the prefixes every order route is served under.
// "/api" is canonical, the bare prefix is kept for older clients.
var BasePaths = []string{"/api", ""}

// ApiHandleFunctions collects the handlers mounted by NewRouter.
type ApiHandleFunctions struct {
	OrderAPI  OrderAPI
	HealthAPI HealthAPI
	// Metrics is served at /metrics when set.
	Metrics http.Handler
}

// NewRouter returns a new router with recovery and request id middleware.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID())
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing engine. Middleware
// must be attached to router before calling it.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, base := range BasePaths {
		group := router.Group(base)
		for _, route := range getRoutes(handleFunctions) {
			if route.HandlerFunc == nil {
				route.HandlerFunc = DefaultHandleFunc
			}
			group.Handle(route.Method, route.Pattern, route.HandlerFunc)
		}
	}
	router.GET("/healthz", handleFunctions.HealthAPI.Healthz)
	router.GET("/readyz", handleFunctions.HealthAPI.Readyz)
	if handleFunctions.Metrics != nil {
		router.GET("/metrics", gin.WrapH(handleFunctions.Metrics))
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	api := &handleFunctions.OrderAPI
	return []Route{
		{"ListOrders", http.MethodGet, "/orders", api.ListOrders},
		{"CreateOrder", http.MethodPost, "/orders", api.CreateOrder},
		{"ListOrdersByDateRange", http.MethodGet, "/orders/date-range", api.ListOrdersByDateRange},
		{"ListOrdersByStatus", http.MethodGet, "/orders/status/:status", api.ListOrdersByStatus},
		{"ListOrdersByUser", http.MethodGet, "/orders/user/:userId", api.ListOrdersByUser},
		{"ListPendingOrdersByUser", http.MethodGet, "/orders/user/:userId/pending", api.ListPendingOrdersByUser},
		{"GetOrder", http.MethodGet, "/orders/:id", api.GetOrder},
		{"UpdateOrder", http.MethodPut, "/orders/:id", api.UpdateOrder},
		{"DeleteOrder", http.MethodDelete, "/orders/:id", api.DeleteOrder},
		{"CheckoutOrder", http.MethodPost, "/orders/:id/checkout", api.CheckoutOrder},
		{"TransitionOrder", http.MethodPost, "/orders/:id/transitions", api.TransitionOrder},
	}
}
