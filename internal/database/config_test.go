package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/coursekit/internal/database"
)

func TestDefaultConfig(t *testing.T) {
	cfg := database.DefaultConfig()

	assert.Equal(t, database.DriverPostgres, cfg.Driver)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "coursekit")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_SSL_MODE", "require")

	cfg := database.ConfigFromEnv()

	assert.Equal(t, database.DriverPostgres, cfg.Driver)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "coursekit", cfg.Database)
	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "require", cfg.SSLMode)

	t.Run("ignores malformed port", func(t *testing.T) {
		t.Setenv("DB_PORT", "not-a-port")
		assert.Equal(t, 5432, database.ConfigFromEnv().Port)
	})

	t.Run("selects the sqlite driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("DB_PATH", "/var/lib/coursekit/coursekit.db")

		cfg := database.ConfigFromEnv()
		assert.Equal(t, database.DriverSQLite, cfg.Driver)
		assert.Equal(t, "/var/lib/coursekit/coursekit.db", cfg.Path)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := database.Config{
		Driver:   database.DriverPostgres,
		Host:     "localhost",
		Port:     5432,
		Database: "coursekit",
		User:     "app",
		SSLMode:  "disable",
	}

	t.Run("accepts a complete postgres config", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("accepts a sqlite config without server fields", func(t *testing.T) {
		cfg := database.Config{Driver: database.DriverSQLite, Path: "coursekit.db"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects an unknown driver", func(t *testing.T) {
		cfg := valid
		cfg.Driver = "oracle"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects sqlite without a path", func(t *testing.T) {
		cfg := database.Config{Driver: database.DriverSQLite}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects missing database name", func(t *testing.T) {
		cfg := valid
		cfg.Database = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		cfg := valid
		cfg.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown ssl mode", func(t *testing.T) {
		cfg := valid
		cfg.SSLMode = "maybe"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects missing root cert file", func(t *testing.T) {
		cfg := valid
		cfg.SSLRootCert = "/nonexistent/ca.pem"
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_DSN(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		cfg := database.Config{
			Driver:   database.DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			Database: "coursekit",
			User:     "app",
			Password: "secret",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		require.Contains(t, dsn, "host=localhost")
		require.Contains(t, dsn, "port=5432")
		require.Contains(t, dsn, "dbname=coursekit")
		assert.NotContains(t, dsn, "sslrootcert")

		cfg.SSLRootCert = "/etc/ssl/ca.pem"
		assert.Contains(t, cfg.DSN(), "sslrootcert=/etc/ssl/ca.pem")
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := database.Config{Driver: database.DriverSQLite, Path: "coursekit.db"}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "file:coursekit.db")
		assert.Contains(t, dsn, "foreign_keys(1)")
		assert.Contains(t, dsn, "journal_mode(WAL)")
	})
}

func TestConnect_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "connect_test.db"),
	})
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.Ping(db))
	require.NoError(t, database.NewMigrator(db, database.DriverSQLite).MigrateUp())

	// Enforced foreign keys prove the DSN pragmas reached the connection.
	_, err = db.Exec(
		"INSERT INTO course_users (course_id, user_id, semester_id, created_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)",
		9999, 1, 1,
	)
	assert.Error(t, err)
}
