package repository

import (
	"context"
	"database/sql"

	"github.com/coursekit/coursekit/internal/database/models"
)

var classDescriptor = Descriptor[models.Class]{
	Table:   "classes",
	Key:     "class_id",
	Columns: []string{"course_id", "venue_id", "start_time", "end_time", "status", "created_at"},
	Fields: func(c *models.Class) []any {
		return []any{&c.ClassID, &c.CourseID, &c.VenueID, &c.StartTime, &c.EndTime, &c.Status, &c.CreatedAt}
	},
	Values: func(c *models.Class) []any {
		return []any{c.CourseID, c.VenueID, c.StartTime, c.EndTime, c.Status, c.CreatedAt}
	},
}

// ClassRepository handles class persistence.
type ClassRepository struct {
	*Repository[models.Class]
}

// NewClassRepository creates a new ClassRepository bound to the querier.
func NewClassRepository(db Querier) *ClassRepository {
	return &ClassRepository{Repository: New(db, classDescriptor)}
}

// WithTx returns a new ClassRepository using the given transaction.
func (r *ClassRepository) WithTx(tx *sql.Tx) *ClassRepository {
	return &ClassRepository{Repository: r.WithQuerier(tx)}
}

// ListByCourse retrieves all classes of a course ordered by start time.
func (r *ClassRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Class, error) {
	return r.List(ctx, Filter{OrderBy: "start_time"}.Where("course_id", courseID))
}
