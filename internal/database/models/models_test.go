package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewVenue(t *testing.T) {
	v := NewVenue("LT-1", "North Wing", 120)

	assert.Zero(t, v.VenueID)
	assert.Equal(t, "LT-1", v.Name)
	assert.Equal(t, "North Wing", v.Location)
	assert.Equal(t, 120, v.Capacity)
	assert.WithinDuration(t, time.Now().UTC(), v.CreatedAt, time.Second)
}

func TestNewCourse(t *testing.T) {
	c := NewCourse("CS101", "Introduction to Computing")

	assert.Zero(t, c.CourseID)
	assert.Equal(t, "CS101", c.Code)
	assert.Equal(t, "Introduction to Computing", c.Name)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestNewClass(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(2 * time.Hour)

	c := NewClass(4, 7, start, end)

	assert.Equal(t, int64(4), c.CourseID)
	assert.Equal(t, int64(7), c.VenueID)
	assert.Equal(t, start, c.StartTime)
	assert.Equal(t, end, c.EndTime)
	assert.Equal(t, string(ClassStatusScheduled), c.Status)
}

func TestNewCourseUser(t *testing.T) {
	cu := NewCourseUser(4, 99, 2)

	assert.Equal(t, int64(4), cu.CourseID)
	assert.Equal(t, int64(99), cu.UserID)
	assert.Equal(t, int64(2), cu.SemesterID)
	assert.False(t, cu.CreatedAt.IsZero())
}
