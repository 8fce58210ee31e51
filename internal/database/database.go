package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/coursekit/coursekit/pkg/metrics"
)

// Connect establishes a connection pool for the configured driver. The
// repository and migration SQL runs unchanged on both engines; only the
// schema DDL is per-driver.
func Connect(cfg Config) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var db *sql.DB
	var err error
	switch cfg.Driver {
	case DriverSQLite:
		db, err = sql.Open("sqlite", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		slog.Debug("database pool configured", "driver", cfg.Driver, "path", cfg.Path)

	case DriverPostgres:
		db, err = sql.Open("postgres", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("opening postgres database: %w", err)
		}
		slog.Debug("database pool configured",
			"driver", cfg.Driver, "host", cfg.Host, "port", cfg.Port, "database", cfg.Database)

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	return db, nil
}

// ConnectWithDSN connects a named driver using a full DSN string.
func ConnectWithDSN(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	return db, nil
}

// Ping verifies the database connection is alive.
func Ping(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

// Close closes the database connection pool.
func Close(db *sql.DB) error {
	if err := db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// PublishPoolStats pushes the current connection pool statistics to the
// metrics registry. Callers typically invoke this on a ticker.
func PublishPoolStats(db *sql.DB) {
	metrics.Global().DB().UpdateFromDBStats(db.Stats())
}
