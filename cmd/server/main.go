// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	"gorm.io/gorm"

	adapthttp "github.com/mwestberg/todo-api/internal/adapters/http"
	"github.com/mwestberg/todo-api/internal/adapters/http/handlers"
	"github.com/mwestberg/todo-api/internal/adapters/http/middleware"

	authadapter "github.com/mwestberg/todo-api/internal/adapters/auth"
	"github.com/mwestberg/todo-api/internal/adapters/storage"
	"github.com/mwestberg/todo-api/internal/app"
	"github.com/mwestberg/todo-api/internal/platform/config"
	"github.com/mwestberg/todo-api/internal/platform/health"
	"github.com/mwestberg/todo-api/internal/platform/logging"
	"github.com/mwestberg/todo-api/internal/platform/telemetry"
	"github.com/mwestberg/todo-api/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

// Build identity, stamped via -ldflags at release time.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	db := do.MustInvoke[*gorm.DB](injector)
	registry.Register(storage.NewHealthChecker(db))

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Close the database pool.
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("database close error", slog.Any("error", err))
		}
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (*gorm.DB, error) {
		return storage.Open(cfg.Database)
	})

	do.Provide(injector, func(i do.Injector) (ports.UserRepository, error) {
		db := do.MustInvoke[*gorm.DB](i)
		return storage.NewUserRepository(db), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskRepository, error) {
		db := do.MustInvoke[*gorm.DB](i)
		return storage.NewTaskRepository(db), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.PasswordHasher, error) {
		return authadapter.NewPasswordHasher(cfg.Auth.BcryptCost), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.TokenManager, error) {
		return authadapter.NewTokenManager(cfg.Auth), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.AuthService, error) {
		users := do.MustInvoke[ports.UserRepository](i)
		hasher := do.MustInvoke[ports.PasswordHasher](i)
		tokens := do.MustInvoke[ports.TokenManager](i)
		return app.NewAuthService(users, hasher, tokens, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskService, error) {
		tasks := do.MustInvoke[ports.TaskRepository](i)
		return app.NewTaskService(tasks, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.AuthHandler, error) {
		svc := do.MustInvoke[ports.AuthService](i)
		return handlers.NewAuthHandler(svc), nil
	})

	do.Provide(injector, func(_ do.Injector) (*handlers.UserHandler, error) {
		return handlers.NewUserHandler(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TaskHandler, error) {
		svc := do.MustInvoke[ports.TaskService](i)
		return handlers.NewTaskHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(_ do.Injector) (*handlers.VersionHandler, error) {
		return handlers.NewVersionHandler(handlers.BuildInfo{
			Version:   version,
			Commit:    commit,
			BuildDate: buildDate,
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		authH := do.MustInvoke[*handlers.AuthHandler](i)
		userH := do.MustInvoke[*handlers.UserHandler](i)
		taskH := do.MustInvoke[*handlers.TaskHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		versionH := do.MustInvoke[*handlers.VersionHandler](i)
		authSvc := do.MustInvoke[ports.AuthService](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(authH, userH, taskH, healthH, versionH,
			middleware.RequireAuth(authSvc),
			middleware.LoginRateLimit(cfg.RateLimit),
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
