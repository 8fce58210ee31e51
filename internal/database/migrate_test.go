package database_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/coursekit/internal/database"
)

func openMigrationDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "migrate_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var n int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestMigrator_MigrateUp(t *testing.T) {
	db := openMigrationDB(t)
	migrator := database.NewMigrator(db, database.DriverSQLite)

	require.NoError(t, migrator.MigrateUp())

	for _, table := range []string{"venues", "courses", "classes", "course_users", "attendance_records"} {
		assert.True(t, tableExists(t, db, table), "expected table %s", table)
	}

	t.Run("is idempotent", func(t *testing.T) {
		require.NoError(t, migrator.MigrateUp())

		status, err := migrator.Status()
		require.NoError(t, err)
		for _, mig := range status {
			assert.NotNil(t, mig.AppliedAt, "migration %s should be applied", mig.Version)
		}
	})
}

func TestMigrator_MigrateDown(t *testing.T) {
	db := openMigrationDB(t)
	migrator := database.NewMigrator(db, database.DriverSQLite)

	t.Run("no applied migrations is a no-op", func(t *testing.T) {
		assert.NoError(t, migrator.MigrateDown())
	})

	require.NoError(t, migrator.MigrateUp())

	t.Run("rolls back the last migration only", func(t *testing.T) {
		require.NoError(t, migrator.MigrateDown())

		assert.False(t, tableExists(t, db, "attendance_records"))
		assert.True(t, tableExists(t, db, "classes"))
	})

	t.Run("reapplies after rollback", func(t *testing.T) {
		require.NoError(t, migrator.MigrateUp())
		assert.True(t, tableExists(t, db, "attendance_records"))
	})
}

func TestMigrator_Status(t *testing.T) {
	db := openMigrationDB(t)
	migrator := database.NewMigrator(db, database.DriverSQLite)

	status, err := migrator.Status()
	require.NoError(t, err)
	require.NotEmpty(t, status)

	for _, mig := range status {
		assert.Nil(t, mig.AppliedAt)
		assert.NotEmpty(t, mig.UpSQL)
		assert.NotEmpty(t, mig.DownSQL)
	}

	require.NoError(t, migrator.MigrateUp())

	status, err = migrator.Status()
	require.NoError(t, err)
	for _, mig := range status {
		assert.NotNil(t, mig.AppliedAt)
	}
}

func TestMigrator_Dialects(t *testing.T) {
	db := openMigrationDB(t)

	// Each driver carries its own DDL; the version set must match and the
	// generated-key syntax must fit the engine it targets.
	sqliteStatus, err := database.NewMigrator(db, database.DriverSQLite).Status()
	require.NoError(t, err)
	pgStatus, err := database.NewMigrator(db, database.DriverPostgres).Status()
	require.NoError(t, err)

	require.Len(t, pgStatus, len(sqliteStatus))
	for i := range pgStatus {
		assert.Equal(t, sqliteStatus[i].Version, pgStatus[i].Version)
		assert.NotEmpty(t, pgStatus[i].UpSQL)
		assert.NotEmpty(t, pgStatus[i].DownSQL)
		assert.NotContains(t, pgStatus[i].UpSQL, "AUTOINCREMENT")
		assert.Contains(t, sqliteStatus[i].UpSQL, "INTEGER PRIMARY KEY AUTOINCREMENT")
	}
	assert.Contains(t, pgStatus[0].UpSQL, "BIGSERIAL PRIMARY KEY")
}
