// Package database provides database connectivity, sessions, and migrations.
package database

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Supported drivers. Postgres is the production engine; SQLite serves
// embedded and single-node deployments.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database connection configuration. The Postgres fields are
// required only when the postgres driver is selected; Path only for sqlite.
type Config struct {
	Driver   string `validate:"required,oneof=postgres sqlite"`
	Host     string `validate:"required_if=Driver postgres"`
	Port     int    `validate:"required_if=Driver postgres,min=0,max=65535"`
	Database string `validate:"required_if=Driver postgres"`
	User     string `validate:"required_if=Driver postgres"`
	Password string
	SSLMode  string `validate:"omitempty,oneof=disable require verify-ca verify-full"`
	// SSLRootCert is an optional path to a CA certificate used to verify
	// the server when SSLMode is verify-ca or verify-full.
	SSLRootCert string `validate:"omitempty,file"`
	// Path is the sqlite database file location.
	Path string `validate:"required_if=Driver sqlite"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Driver:  DriverPostgres,
		Host:    "localhost",
		Port:    5432,
		SSLMode: "disable",
	}
}

// ConfigFromEnv creates a Config from environment variables.
// Environment variables: DB_DRIVER, DB_HOST, DB_PORT, DB_NAME, DB_USER,
// DB_PASSWORD, DB_SSL_MODE, DB_SSL_ROOT_CERT, DB_PATH.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		cfg.Driver = driver
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			cfg.Port = p
		}
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database = name
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Password = pass
	}
	if ssl := os.Getenv("DB_SSL_MODE"); ssl != "" {
		cfg.SSLMode = ssl
	}
	if cert := os.Getenv("DB_SSL_ROOT_CERT"); cert != "" {
		cfg.SSLRootCert = cert
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.Path = path
	}

	return cfg
}

// Validate checks the configuration for missing or malformed fields.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}
	return nil
}

// DSN builds the connection string for the configured driver.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		// Foreign keys and the busy timeout are per-connection pragmas;
		// WAL keeps readers unblocked while a session writes.
		return "file:" + c.Path +
			"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
	if c.SSLRootCert != "" {
		dsn += " sslrootcert=" + c.SSLRootCert
	}
	return dsn
}
