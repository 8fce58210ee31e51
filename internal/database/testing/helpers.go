// Package testing provides test helpers for database tests.
package testing

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/coursekit/coursekit/internal/database"
	"github.com/coursekit/coursekit/internal/database/models"
)

// SetupTestDB connects a file-backed SQLite database in a temporary
// directory and runs all migrations. The sqlite DSN enables WAL, which
// gives sessions on separate connections snapshot isolation, and enforces
// foreign keys on every connection, matching the constraints the
// production schema declares.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "coursekit_test.db"),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	migrator := database.NewMigrator(db, database.DriverSQLite)
	if err := migrator.MigrateUp(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// TeardownTestDB closes the test database connection.
func TeardownTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	if err := db.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// TestData holds seeded test data for use in tests.
type TestData struct {
	Venue  *models.Venue
	Course *models.Course
	Class  *models.Class
}

// SeedTestData inserts a venue, a course, and one class of that course.
func SeedTestData(t *testing.T, db *sql.DB) *TestData {
	t.Helper()

	data := &TestData{}
	now := time.Now().UTC()

	data.Venue = models.NewVenue("LT-1", "North Wing", 120)
	err := db.QueryRow(
		"INSERT INTO venues (name, location, capacity, created_at) VALUES (?, ?, ?, ?) RETURNING venue_id",
		data.Venue.Name, data.Venue.Location, data.Venue.Capacity, data.Venue.CreatedAt,
	).Scan(&data.Venue.VenueID)
	if err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}

	data.Course = models.NewCourse("CS101", "Introduction to Computing")
	err = db.QueryRow(
		"INSERT INTO courses (code, name, created_at) VALUES (?, ?, ?) RETURNING course_id",
		data.Course.Code, data.Course.Name, data.Course.CreatedAt,
	).Scan(&data.Course.CourseID)
	if err != nil {
		t.Fatalf("failed to seed course: %v", err)
	}

	data.Class = models.NewClass(data.Course.CourseID, data.Venue.VenueID, now, now.Add(2*time.Hour))
	err = db.QueryRow(
		"INSERT INTO classes (course_id, venue_id, start_time, end_time, status, created_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING class_id",
		data.Class.CourseID, data.Class.VenueID, data.Class.StartTime, data.Class.EndTime, data.Class.Status, data.Class.CreatedAt,
	).Scan(&data.Class.ClassID)
	if err != nil {
		t.Fatalf("failed to seed class: %v", err)
	}

	return data
}
