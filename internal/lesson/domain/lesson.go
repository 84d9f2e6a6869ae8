package domain

import "time"

// LessonStatus represents the lifecycle state of a lesson
type LessonStatus string

const (
	LessonStatusScheduled   LessonStatus = "SCHEDULED"
	LessonStatusInProgress  LessonStatus = "IN_PROGRESS"
	LessonStatusCompleted   LessonStatus = "COMPLETED"
	LessonStatusCancelled   LessonStatus = "CANCELLED"
	LessonStatusRescheduled LessonStatus = "RESCHEDULED"
)

// Lesson is a locally owned teaching appointment. It is created either by
// direct user action or by the calendar projector; GoogleEventID correlates
// it to the remote calendar event and is unique when present.
type Lesson struct {
	ID                  string       `json:"id" gorm:"primaryKey"`
	TeacherID           string       `json:"teacher_id" gorm:"index;not null;uniqueIndex:idx_lesson_pair_number"`
	StudentID           string       `json:"student_id" gorm:"index;not null;uniqueIndex:idx_lesson_pair_number"`
	Title               string       `json:"title" gorm:"not null"`
	ScheduledAt         time.Time    `json:"scheduled_at"`
	Notes               string       `json:"notes,omitempty"`
	Status              LessonStatus `json:"status" gorm:"default:SCHEDULED"`
	GoogleEventID       *string      `json:"google_event_id,omitempty" gorm:"uniqueIndex"`
	LessonTeacherNumber int          `json:"lesson_teacher_number" gorm:"uniqueIndex:idx_lesson_pair_number"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}
