// Package storage implements the persistence ports on top of gorm. The
// postgres driver serves deployments; the sqlite driver serves the local
// profile and tests (in-memory databases). Both map store-level failures to
// domain sentinel errors at the boundary.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/platform/config"
	"github.com/mwestberg/todo-api/internal/ports"
)

// Open connects to the configured database, runs migrations, and returns the
// gorm handle. TranslateError is enabled so unique-constraint violations
// surface as gorm.ErrDuplicatedKey on every driver.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&userRecord{}, &taskRecord{}); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return db, nil
}

// Compile-time check that HealthChecker implements ports.HealthChecker.
var _ ports.HealthChecker = (*HealthChecker)(nil)

// healthCheckTimeout bounds the readiness ping when the incoming context
// carries no deadline of its own.
const healthCheckTimeout = 2 * time.Second

// HealthChecker reports database connectivity for the readiness endpoint.
type HealthChecker struct {
	db *gorm.DB
}

// NewHealthChecker creates a database health checker.
func NewHealthChecker(db *gorm.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// Name identifies this checker in readiness results.
func (h *HealthChecker) Name() string { return "database" }

// HealthCheck pings the underlying connection.
func (h *HealthChecker) HealthCheck(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, healthCheckTimeout)
		defer cancel()
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return fmt.Errorf("acquiring connection pool: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

// unavailable wraps an unexpected store error so that errors.Is matching on
// domain.ErrUnavailable works while the driver error stays in the chain.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrUnavailable, err))
}
