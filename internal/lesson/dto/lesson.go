package dto

import (
	"time"

	"melodica-backend/internal/lesson/domain"
	"melodica-backend/internal/lesson/repository"
)

type CreateLessonRequest struct {
	StudentID   string    `json:"student_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes"`
}

type UpdateLessonRequest struct {
	Title       *string              `json:"title"`
	ScheduledAt *time.Time           `json:"scheduled_at"`
	Notes       *string              `json:"notes"`
	Status      *domain.LessonStatus `json:"status"`
}

type LessonsResponse struct {
	Lessons []*domain.Lesson `json:"lessons"`
	Total   int64            `json:"total"`
}

type StudentsResponse struct {
	Students []*repository.StudentSummary `json:"students"`
}
