package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/coursekit/internal/database/models"
	"github.com/coursekit/coursekit/internal/database/repository"
	dbtest "github.com/coursekit/coursekit/internal/database/testing"
)

func TestClassRepository_Create(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	defer dbtest.TeardownTestDB(t, db)

	ctx := context.Background()
	courses := repository.NewCourseRepository(db)
	venues := repository.NewVenueRepository(db)
	classes := repository.NewClassRepository(db)

	course := models.NewCourse("CS101", "Intro")
	require.NoError(t, courses.Create(ctx, course))
	venue := models.NewVenue("LT-1", "North Wing", 120)
	require.NoError(t, venues.Create(ctx, venue))

	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	t.Run("creates class for existing course and venue", func(t *testing.T) {
		class := models.NewClass(course.CourseID, venue.VenueID, start, start.Add(2*time.Hour))

		err := classes.Create(ctx, class)
		require.NoError(t, err)
		assert.NotZero(t, class.ClassID)
		assert.Equal(t, string(models.ClassStatusScheduled), class.Status)
	})

	t.Run("unknown course fails with repository.ValidationError", func(t *testing.T) {
		class := models.NewClass(9999, venue.VenueID, start, start.Add(time.Hour))

		err := classes.Create(ctx, class)
		require.Error(t, err)

		var verr *repository.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, repository.ConstraintForeignKey, verr.Kind)
	})

	t.Run("unknown venue fails with repository.ValidationError", func(t *testing.T) {
		class := models.NewClass(course.CourseID, 9999, start, start.Add(time.Hour))

		err := classes.Create(ctx, class)
		require.Error(t, err)
		assert.True(t, repository.IsValidation(err))
	})
}

func TestClassRepository_ListByCourse(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	defer dbtest.TeardownTestDB(t, db)

	ctx := context.Background()
	data := dbtest.SeedTestData(t, db)
	classes := repository.NewClassRepository(db)

	// Two more classes, deliberately created out of time order.
	later := data.Class.StartTime.Add(48 * time.Hour)
	earlier := data.Class.StartTime.Add(-48 * time.Hour)
	require.NoError(t, classes.Create(ctx, models.NewClass(data.Course.CourseID, data.Venue.VenueID, later, later.Add(time.Hour))))
	require.NoError(t, classes.Create(ctx, models.NewClass(data.Course.CourseID, data.Venue.VenueID, earlier, earlier.Add(time.Hour))))

	listed, err := classes.ListByCourse(ctx, data.Course.CourseID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i := 1; i < len(listed); i++ {
		assert.False(t, listed[i].StartTime.Before(listed[i-1].StartTime))
	}
}

func TestClassRepository_CourseScenario(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	defer dbtest.TeardownTestDB(t, db)

	ctx := context.Background()
	courses := repository.NewCourseRepository(db)
	venues := repository.NewVenueRepository(db)
	classes := repository.NewClassRepository(db)

	course := models.NewCourse("CS101", "Intro")
	require.NoError(t, courses.Create(ctx, course))

	found, err := courses.GetByID(ctx, course.CourseID)
	require.NoError(t, err)
	assert.Equal(t, "CS101", found.Code)

	venue := models.NewVenue("LT-1", "North Wing", 120)
	require.NoError(t, venues.Create(ctx, venue))

	start := time.Now().UTC()
	ok := models.NewClass(course.CourseID, venue.VenueID, start, start.Add(time.Hour))
	require.NoError(t, classes.Create(ctx, ok))

	bad := models.NewClass(9999, venue.VenueID, start, start.Add(time.Hour))
	err = classes.Create(ctx, bad)
	assert.True(t, repository.IsValidation(err))
}

func TestClassRepository_CascadeFromCourse(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	defer dbtest.TeardownTestDB(t, db)

	ctx := context.Background()
	data := dbtest.SeedTestData(t, db)
	courses := repository.NewCourseRepository(db)
	classes := repository.NewClassRepository(db)

	// Dependent attendance data, maintained outside the repository layer.
	_, err := db.Exec(
		"INSERT INTO attendance_records (class_id, student_id, status) VALUES (?, ?, ?)",
		data.Class.ClassID, 42, "present",
	)
	require.NoError(t, err)

	removed, err := courses.Delete(ctx, data.Course.CourseID)
	require.NoError(t, err)
	assert.True(t, removed)

	// The storage engine cascades: course -> classes -> attendance records.
	cls, err := classes.GetByID(ctx, data.Class.ClassID)
	require.NoError(t, err)
	assert.Nil(t, cls)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM attendance_records").Scan(&n))
	assert.Zero(t, n)
}
