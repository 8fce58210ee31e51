package repository

import (
	"context"
	"database/sql"

	"github.com/coursekit/coursekit/internal/database/models"
)

var courseUserDescriptor = Descriptor[models.CourseUser]{
	Table:   "course_users",
	Key:     "course_user_id",
	Columns: []string{"course_id", "user_id", "semester_id", "created_at"},
	Fields: func(cu *models.CourseUser) []any {
		return []any{&cu.CourseUserID, &cu.CourseID, &cu.UserID, &cu.SemesterID, &cu.CreatedAt}
	},
	Values: func(cu *models.CourseUser) []any {
		return []any{cu.CourseID, cu.UserID, cu.SemesterID, cu.CreatedAt}
	},
}

// CourseUserRepository handles enrollment persistence.
type CourseUserRepository struct {
	*Repository[models.CourseUser]
}

// NewCourseUserRepository creates a new CourseUserRepository bound to the querier.
func NewCourseUserRepository(db Querier) *CourseUserRepository {
	return &CourseUserRepository{Repository: New(db, courseUserDescriptor)}
}

// WithTx returns a new CourseUserRepository using the given transaction.
func (r *CourseUserRepository) WithTx(tx *sql.Tx) *CourseUserRepository {
	return &CourseUserRepository{Repository: r.WithQuerier(tx)}
}

// ListByCourseSemester retrieves the enrollments of a course for one semester.
func (r *CourseUserRepository) ListByCourseSemester(ctx context.Context, courseID, semesterID int64) ([]*models.CourseUser, error) {
	return r.List(ctx, Filter{}.Where("course_id", courseID).Where("semester_id", semesterID))
}

// ListByUser retrieves every enrollment of one user.
func (r *CourseUserRepository) ListByUser(ctx context.Context, userID int64) ([]*models.CourseUser, error) {
	return r.List(ctx, Filter{}.Where("user_id", userID))
}
