package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"golang.org/x/sync/errgroup"

	orderserver "github.com/Apurer/order-management-api/go"
	orderkafka "github.com/Apurer/order-management-api/internal/domains/orders/adapters/events/kafka"
	ordermemory "github.com/Apurer/order-management-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/order-management-api/internal/domains/orders/adapters/observability"
	ordergorm "github.com/Apurer/order-management-api/internal/domains/orders/adapters/persistence/gormstore"
	orderworkflows "github.com/Apurer/order-management-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Apurer/order-management-api/internal/domains/orders/application"
	orderports "github.com/Apurer/order-management-api/internal/domains/orders/ports"
	"github.com/Apurer/order-management-api/internal/platform/database"
	"github.com/Apurer/order-management-api/internal/platform/metrics"
	"github.com/Apurer/order-management-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/order-management-api/internal/platform/observability"
)

const serviceName = "order-management-api"

// Run boots the order HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	deps, cleanup, err := BuildOrderService(ctx, cfg, instruments, "internal.orders.application")
	if err != nil {
		return err
	}
	defer cleanup()

	checkout, closeCheckout := buildCheckout(deps, logger, func() (client.Client, error) {
		return ConnectTemporalClient(cfg, instruments, "temporal-client")
	})
	defer closeCheckout()

	handlers := orderserver.ApiHandleFunctions{
		OrderAPI: orderserver.NewOrderAPI(deps.Service,
			orderserver.WithCheckoutOrchestrator(checkout),
			orderserver.WithLogger(logger),
		),
		HealthAPI: orderserver.NewHealthAPI(map[string]orderserver.ReadinessCheck{
			"orders-store": deps.Repository.Ping,
		}),
	}
	router := buildRouter(handlers, metrics.NewHTTPMetrics("orders"))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return serve(ctx, server, cfg.ShutdownTimeout, logger)
}

// OrderDeps is the order service stack shared by the API and the worker.
type OrderDeps struct {
	Service    orderports.Service
	Repository orderports.Repository
}

// BuildOrderService wires the store, event publisher, core service and its
// observability decorator. The returned cleanup releases connections.
func BuildOrderService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments, scope string) (OrderDeps, func(), error) {
	logger := instruments.EffectiveLogger()
	repo, cleanupRepo, err := buildOrderRepository(ctx, cfg, logger)
	if err != nil {
		return OrderDeps{}, nil, err
	}

	var events orderports.EventPublisher = orderports.NoopEventPublisher
	cleanup := cleanupRepo
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := orderkafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, orderkafka.WithLogger(logger))
		events = publisher
		cleanup = func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("failed to close kafka publisher", slog.String("error", err.Error()))
			}
			cleanupRepo()
		}
		logger.Info("order events published to kafka", slog.String("topic", cfg.Kafka.Topic), slog.Any("brokers", cfg.Kafka.Brokers))
	}

	core := orderapp.NewService(repo, orderapp.WithEventPublisher(events))
	service := orderobs.New(
		core,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer(scope)),
		orderobs.WithMeter(instruments.Meter(scope)),
	)
	return OrderDeps{Service: service, Repository: repo}, cleanup, nil
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (orderports.Repository, func(), error) {
	db, cleanup := database.ConnectOrFallback(ctx, logger, cfg.Database.Driver, cfg.Database.DSN)
	if db == nil {
		return ordermemory.NewRepository(), cleanup, nil
	}
	if cfg.Database.AutoMigrate {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to migrate order schema: %w", err)
		}
		logger.Info("order schema migrated")
	}
	logger.Info("order repository configured", slog.String("driver", cfg.Database.Driver))
	return ordergorm.NewRepository(db), cleanup, nil
}

// buildCheckout picks the checkout orchestrator. Orders kept in this process's
// memory store are invisible to a worker, so they are always checked out inline.
func buildCheckout(deps OrderDeps, logger *slog.Logger, dial func() (client.Client, error)) (orderports.CheckoutOrchestrator, func()) {
	inline := orderworkflows.NewInlineCheckout(deps.Service)
	if _, inMemory := deps.Repository.(*ordermemory.Repository); inMemory {
		logger.Info("order store is in-memory, running inline checkout")
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running inline checkout", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled")
	return orderworkflows.NewTemporalCheckout(temporalClient), temporalClient.Close
}

// ConnectTemporalClient dials Temporal with tracing and structured logging.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.Temporal.Disabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(tracerName),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		Logger:    workerlog.NewStructuredLogger(instruments.EffectiveLogger()),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func buildRouter(handlers orderserver.ApiHandleFunctions, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		orderserver.RequestID(),
		httpMetrics.Middleware(),
	)
	handlers.Metrics = httpMetrics.Handler()
	return orderserver.NewRouterWithGinEngine(router, handlers)
}

// serve runs server until ctx is done, then drains it within timeout.
func serve(ctx context.Context, server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("order API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("order API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logger.Info("shutting down order API", slog.Duration("timeout", timeout))
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
