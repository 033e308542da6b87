package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/database"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/health"
	pkgkafka "github.com/kristopher-lab/verdure-premium-plant-shop/pkg/kafka"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/middleware"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/tracing"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/cart"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/catalog"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/checkout"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/config"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/event"
	handler "github.com/kristopher-lab/verdure-premium-plant-shop/internal/handler/http"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/store"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/user"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize Redis client.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Initialize tracing. Disabled unless configured, in which case the
	// shutdown function is a no-op.
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.OTLPEndpoint
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Build the dependency graph. All entity types share one keyed lock set
	// so Mutate calls on the same record serialize regardless of caller.
	locks := store.NewKeyLocks()
	products := store.New(rdb, catalog.ProductDescriptor(), locks)
	carts := store.New(rdb, cart.Descriptor(), locks)
	orders := store.New(rdb, checkout.Descriptor(), locks)
	users := store.New(rdb, user.Descriptor(), locks)

	eventProducer := event.NewProducer(producer, logger)
	catalogService := catalog.NewService(products, logger)
	cartService := cart.NewService(carts, catalogService, eventProducer, logger)
	userService := user.NewService(users, logger)
	checkoutService := checkout.NewService(orders, cartService, userService, eventProducer, logger)

	// Seed the catalog up front so the first request doesn't pay for it.
	if err := catalogService.EnsureSeed(ctx); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(handler.RouterConfig{
		Catalog:    catalogService,
		Carts:      cartService,
		Checkout:   checkoutService,
		Users:      userService,
		Health:     healthHandler,
		Logger:     logger,
		CORS:       corsCfg,
		PprofCIDRs: cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Flush pending spans.
	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
