package repository

import (
	"context"

	"github.com/coursekit/coursekit/internal/database/models"
)

// CourseRepo defines the interface for course persistence operations.
type CourseRepo interface {
	Create(ctx context.Context, c *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context, f Filter) ([]*models.Course, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Update(ctx context.Context, id int64, changes map[string]any) (*models.Course, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// ClassRepo defines the interface for class persistence operations.
type ClassRepo interface {
	Create(ctx context.Context, c *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	List(ctx context.Context, f Filter) ([]*models.Class, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Class, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Update(ctx context.Context, id int64, changes map[string]any) (*models.Class, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// CourseUserRepo defines the interface for enrollment persistence operations.
type CourseUserRepo interface {
	Create(ctx context.Context, cu *models.CourseUser) error
	GetByID(ctx context.Context, id int64) (*models.CourseUser, error)
	List(ctx context.Context, f Filter) ([]*models.CourseUser, error)
	ListByCourseSemester(ctx context.Context, courseID, semesterID int64) ([]*models.CourseUser, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.CourseUser, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Update(ctx context.Context, id int64, changes map[string]any) (*models.CourseUser, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// VenueRepo defines the interface for venue persistence operations.
type VenueRepo interface {
	Create(ctx context.Context, v *models.Venue) error
	GetByID(ctx context.Context, id int64) (*models.Venue, error)
	List(ctx context.Context, f Filter) ([]*models.Venue, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Update(ctx context.Context, id int64, changes map[string]any) (*models.Venue, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// Repositories holds every entity repository bound to one querier, so that
// repositories constructed from one session share its unit of work.
type Repositories struct {
	Courses     CourseRepo
	Classes     ClassRepo
	CourseUsers CourseUserRepo
	Venues      VenueRepo
}

// NewRepositories binds all four repositories to the given querier.
func NewRepositories(db Querier) *Repositories {
	return &Repositories{
		Courses:     NewCourseRepository(db),
		Classes:     NewClassRepository(db),
		CourseUsers: NewCourseUserRepository(db),
		Venues:      NewVenueRepository(db),
	}
}

// Compile-time checks that concrete repositories satisfy their interfaces.
var (
	_ CourseRepo     = (*CourseRepository)(nil)
	_ ClassRepo      = (*ClassRepository)(nil)
	_ CourseUserRepo = (*CourseUserRepository)(nil)
	_ VenueRepo      = (*VenueRepository)(nil)
)
