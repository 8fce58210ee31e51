// Package models defines domain models for the database layer.
package models

import (
	"time"
)

// Venue represents a physical or virtual teaching location.
type Venue struct {
	VenueID   int64
	Name      string
	Location  string
	Capacity  int
	CreatedAt time.Time
}

// Course represents a subject offering identified by a unique code.
type Course struct {
	CourseID  int64
	Code      string
	Name      string
	CreatedAt time.Time
}

// Class represents one scheduled teaching session of a course at a venue.
type Class struct {
	ClassID   int64
	CourseID  int64
	VenueID   int64
	StartTime time.Time
	EndTime   time.Time
	Status    string
	CreatedAt time.Time
}

// ClassStatus represents valid class statuses.
type ClassStatus string

const (
	ClassStatusScheduled ClassStatus = "scheduled"
	ClassStatusOngoing   ClassStatus = "ongoing"
	ClassStatusCompleted ClassStatus = "completed"
	ClassStatusCancelled ClassStatus = "cancelled"
)

// CourseUser represents an enrollment binding a user to a course for one semester.
type CourseUser struct {
	CourseUserID int64
	CourseID     int64
	UserID       int64
	SemesterID   int64
	CreatedAt    time.Time
}

// NewVenue creates a new Venue with sensible defaults.
func NewVenue(name, location string, capacity int) *Venue {
	return &Venue{
		Name:      name,
		Location:  location,
		Capacity:  capacity,
		CreatedAt: time.Now().UTC(),
	}
}

// NewCourse creates a new Course with sensible defaults.
func NewCourse(code, name string) *Course {
	return &Course{
		Code:      code,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// NewClass creates a new Class in the scheduled state.
func NewClass(courseID, venueID int64, start, end time.Time) *Class {
	return &Class{
		CourseID:  courseID,
		VenueID:   venueID,
		StartTime: start,
		EndTime:   end,
		Status:    string(ClassStatusScheduled),
		CreatedAt: time.Now().UTC(),
	}
}

// NewCourseUser creates a new CourseUser enrollment record.
func NewCourseUser(courseID, userID, semesterID int64) *CourseUser {
	return &CourseUser{
		CourseID:   courseID,
		UserID:     userID,
		SemesterID: semesterID,
		CreatedAt:  time.Now().UTC(),
	}
}
