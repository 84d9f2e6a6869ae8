package repository

import (
	"time"

	"melodica-backend/internal/lesson/domain"
)

// SyncConflictRepository defines the interface for sync conflict storage
type SyncConflictRepository interface {
	// Create inserts a new pending conflict
	Create(conflict *domain.SyncConflict) error

	// FindByID finds a conflict by its ID
	FindByID(id string) (*domain.SyncConflict, error)

	// FindPendingByTeacherID lists pending conflicts whose owning lesson
	// belongs to the given teacher, newest first
	FindPendingByTeacherID(teacherID string) ([]*domain.SyncConflict, error)

	// HasPendingForLesson reports whether a lesson already has an
	// unresolved conflict
	HasPendingForLesson(lessonID string) (bool, error)

	// FindPendingOlderThan lists pending conflicts created before the cutoff
	FindPendingOlderThan(cutoff time.Time) ([]*domain.SyncConflict, error)

	// Update saves a conflict after resolution
	Update(conflict *domain.SyncConflict) error
}
