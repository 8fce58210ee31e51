package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/coursekit/internal/database/models"
	"github.com/coursekit/coursekit/internal/database/repository"
	dbtest "github.com/coursekit/coursekit/internal/database/testing"
)

func TestCourseRepository_Create(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	defer dbtest.TeardownTestDB(t, db)

	repo := repository.NewCourseRepository(db)
	ctx := context.Background()

	t.Run("creates course successfully", func(t *testing.T) {
		course := models.NewCourse("CS101", "Introduction to Computing")

		err := repo.Create(ctx, course)
		require.NoError(t, err)
		assert.NotZero(t, course.CourseID)

		found, err := repo.GetByID(ctx, course.CourseID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "CS101", found.Code)
	})

	t.Run("duplicate code fails with repository.ValidationError", func(t *testing.T) {
		first := models.NewCourse("CS201", "Data Structures")
		require.NoError(t, repo.Create(ctx, first))

		dup := models.NewCourse("CS201", "Data Structures Again")
		err := repo.Create(ctx, dup)
		require.Error(t, err)

		var verr *repository.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, repository.ConstraintUnique, verr.Kind)
		assert.Equal(t, "courses", verr.Table)

		// Nothing was persisted for the rejected row.
		n, err := repo.Count(ctx, repository.Filter{}.Where("code", "CS201"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestCourseRepository_GetByCode(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	defer dbtest.TeardownTestDB(t, db)

	repo := repository.NewCourseRepository(db)
	ctx := context.Background()

	course := models.NewCourse("MA204", "Linear Algebra")
	require.NoError(t, repo.Create(ctx, course))

	t.Run("returns the course", func(t *testing.T) {
		found, err := repo.GetByCode(ctx, "MA204")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, course.CourseID, found.CourseID)
	})

	t.Run("returns nil for unknown code", func(t *testing.T) {
		found, err := repo.GetByCode(ctx, "XX999")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestCourseRepository_Update(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	defer dbtest.TeardownTestDB(t, db)

	repo := repository.NewCourseRepository(db)
	ctx := context.Background()

	course := models.NewCourse("PH101", "Mechanics")
	require.NoError(t, repo.Create(ctx, course))

	updated, err := repo.Update(ctx, course.CourseID, map[string]any{"name": "Classical Mechanics"})
	require.NoError(t, err)
	assert.Equal(t, "Classical Mechanics", updated.Name)
	assert.Equal(t, "PH101", updated.Code)

	t.Run("cannot take another course's code", func(t *testing.T) {
		other := models.NewCourse("PH102", "Waves")
		require.NoError(t, repo.Create(ctx, other))

		_, err := repo.Update(ctx, other.CourseID, map[string]any{"code": "PH101"})
		require.Error(t, err)
		assert.True(t, repository.IsValidation(err))
	})
}
