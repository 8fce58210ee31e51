package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coursekit/coursekit/internal/database"
)

// DatabaseChecker verifies that the database answers a ping and reports
// pool utilization.
type DatabaseChecker struct {
	db      *sql.DB
	timeout time.Duration
}

// NewDatabaseChecker creates a checker for the given database handle.
func NewDatabaseChecker(db *sql.DB) *DatabaseChecker {
	return &DatabaseChecker{db: db, timeout: 2 * time.Second}
}

func (c *DatabaseChecker) Name() string { return "database" }

func (c *DatabaseChecker) Severity() Severity { return SeverityCritical }

func (c *DatabaseChecker) Check(ctx context.Context) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	stats := c.db.Stats()
	return CheckResult{
		Status: StatusHealthy,
		Details: map[string]any{
			"max_connections":  stats.MaxOpenConnections,
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
		},
	}
}

// MigrationsChecker reports whether the schema is fully migrated. Pending
// migrations degrade the layer without making it unavailable: reads still
// work against the older schema.
type MigrationsChecker struct {
	migrator *database.Migrator
}

// NewMigrationsChecker creates a checker backed by the given migrator.
func NewMigrationsChecker(migrator *database.Migrator) *MigrationsChecker {
	return &MigrationsChecker{migrator: migrator}
}

func (c *MigrationsChecker) Name() string { return "migrations" }

func (c *MigrationsChecker) Severity() Severity { return SeverityWarning }

func (c *MigrationsChecker) Check(ctx context.Context) CheckResult {
	status, err := c.migrator.Status()
	if err != nil {
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: fmt.Sprintf("reading migration status: %v", err),
		}
	}

	pending := 0
	for _, mig := range status {
		if mig.AppliedAt == nil {
			pending++
		}
	}

	if pending > 0 {
		return CheckResult{
			Status:  StatusDegraded,
			Message: fmt.Sprintf("%d pending migrations", pending),
			Details: map[string]any{"pending": pending, "total": len(status)},
		}
	}

	return CheckResult{
		Status:  StatusHealthy,
		Details: map[string]any{"applied": len(status)},
	}
}
