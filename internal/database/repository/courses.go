package repository

import (
	"context"
	"database/sql"

	"github.com/coursekit/coursekit/internal/database/models"
)

var courseDescriptor = Descriptor[models.Course]{
	Table:   "courses",
	Key:     "course_id",
	Columns: []string{"code", "name", "created_at"},
	Fields: func(c *models.Course) []any {
		return []any{&c.CourseID, &c.Code, &c.Name, &c.CreatedAt}
	},
	Values: func(c *models.Course) []any {
		return []any{c.Code, c.Name, c.CreatedAt}
	},
}

// CourseRepository handles course persistence.
type CourseRepository struct {
	*Repository[models.Course]
}

// NewCourseRepository creates a new CourseRepository bound to the querier.
func NewCourseRepository(db Querier) *CourseRepository {
	return &CourseRepository{Repository: New(db, courseDescriptor)}
}

// WithTx returns a new CourseRepository using the given transaction.
func (r *CourseRepository) WithTx(tx *sql.Tx) *CourseRepository {
	return &CourseRepository{Repository: r.WithQuerier(tx)}
}

// GetByCode retrieves a course by its unique code, or nil when absent.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	courses, err := r.List(ctx, Filter{}.Where("code", code))
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, nil
	}
	return courses[0], nil
}
