package repository

import (
	"errors"

	"melodica-backend/internal/lesson/domain"
)

// ErrDuplicateLesson is returned by Create when a unique constraint is hit
// (an already-projected google_event_id, or a lost race on the per-pair
// lesson number after retries).
var ErrDuplicateLesson = errors.New("duplicate lesson")

// LessonRepository defines the interface for lesson data access
type LessonRepository interface {
	// Create inserts a new lesson, assigning the next per-(teacher,student)
	// lesson number when none is set
	Create(lesson *domain.Lesson) error

	// FindByID finds a lesson by its ID
	FindByID(id string) (*domain.Lesson, error)

	// FindByGoogleEventID finds the lesson paired with a remote calendar event
	FindByGoogleEventID(eventID string) (*domain.Lesson, error)

	// FindByTeacherID lists a teacher's lessons with optional status filter
	FindByTeacherID(teacherID string, status *domain.LessonStatus, limit, offset int) ([]*domain.Lesson, int64, error)

	// Update saves an existing lesson and bumps updated_at
	Update(lesson *domain.Lesson) error

	// UpdateColumns writes the given columns without touching updated_at.
	// Used by manual conflict resolution to avoid re-triggering a
	// self-conflict on the next sync pass.
	UpdateColumns(id string, columns map[string]interface{}) error

	// ListStudentsByTeacher aggregates the teacher's students with their
	// lesson counts
	ListStudentsByTeacher(teacherID string) ([]*StudentSummary, error)
}

// StudentSummary is a per-student rollup for the teacher dashboard
type StudentSummary struct {
	StudentID    string `json:"student_id"`
	LessonCount  int64  `json:"lesson_count"`
	LatestNumber int    `json:"latest_number"`
}
