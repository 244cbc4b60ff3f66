package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/crediflow/credit-approval/internal/application/usecase"
	"github.com/crediflow/credit-approval/internal/domain/service"
	"github.com/crediflow/credit-approval/internal/infrastructure/config"
	"github.com/crediflow/credit-approval/internal/infrastructure/kafka"
	pgRepo "github.com/crediflow/credit-approval/internal/infrastructure/persistence/postgres"
	"github.com/crediflow/credit-approval/internal/presentation/rest"
	pkgkafka "github.com/crediflow/credit-approval/pkg/kafka"
	"github.com/crediflow/credit-approval/pkg/observability"
	pkgpostgres "github.com/crediflow/credit-approval/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   getEnv("LOG_LEVEL", "info"),
		Format:  "json",
	})

	logger.Info("starting credit-approval",
		"http_port", cfg.HTTPPort,
		"metrics_port", cfg.MetricsPort,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	otel.SetMeterProvider(meterProvider)

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN()); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	customerRepo := pgRepo.NewCustomerRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)
	uow := pgRepo.NewUnitOfWork(pool)

	producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer producer.Close()
	publisher := kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)

	scorer := service.NewCreditScorer()
	decider := service.NewEligibilityDecider(scorer)

	// Wire use cases.
	registerUC := usecase.NewRegisterCustomerUseCase(customerRepo, publisher, logger)
	checkUC := usecase.NewCheckEligibilityUseCase(customerRepo, loanRepo, decider, logger)
	createUC := usecase.NewCreateLoanUseCase(uow, decider, publisher, logger)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo, customerRepo)
	listLoansUC := usecase.NewListCustomerLoansUseCase(customerRepo, loanRepo)

	// HTTP API server.
	mux := http.NewServeMux()
	handler := rest.NewCreditHandler(registerUC, checkUC, createUC, getLoanUC, listLoansUC, logger)
	handler.RegisterRoutes(mux)

	healthHandler := rest.NewHealthHandler(func(ctx context.Context) error {
		return pkgpostgres.HealthCheck(ctx, pool)
	}, logger)
	healthHandler.RegisterRoutes(mux)

	apiServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.LoggingMiddleware(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server.
	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", metricsHandler)
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("credit-approval stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
