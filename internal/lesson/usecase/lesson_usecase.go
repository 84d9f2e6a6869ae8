package usecase

import (
	"errors"

	"melodica-backend/internal/lesson/domain"
	lessondto "melodica-backend/internal/lesson/dto"
	"melodica-backend/internal/lesson/repository"
)

// ErrLessonNotFound is returned when an operation targets a missing or
// foreign lesson.
var ErrLessonNotFound = errors.New("lesson not found")

// LessonUsecase defines lesson CRUD for the CRM surface
type LessonUsecase interface {
	ListLessons(teacherID string, status *domain.LessonStatus, limit, offset int) ([]*domain.Lesson, int64, error)
	GetLesson(teacherID, lessonID string) (*domain.Lesson, error)
	CreateLesson(teacherID string, req *lessondto.CreateLessonRequest) (*domain.Lesson, error)
	UpdateLesson(teacherID, lessonID string, req *lessondto.UpdateLessonRequest) (*domain.Lesson, error)
	CancelLesson(teacherID, lessonID string) (*domain.Lesson, error)
	ListStudents(teacherID string) ([]*repository.StudentSummary, error)
}

// lessonUsecase implements LessonUsecase
type lessonUsecase struct {
	lessonRepo repository.LessonRepository
}

// NewLessonUsecase creates a new instance of lessonUsecase
func NewLessonUsecase(lessonRepo repository.LessonRepository) LessonUsecase {
	return &lessonUsecase{lessonRepo: lessonRepo}
}

func (u *lessonUsecase) ListLessons(teacherID string, status *domain.LessonStatus, limit, offset int) ([]*domain.Lesson, int64, error) {
	return u.lessonRepo.FindByTeacherID(teacherID, status, limit, offset)
}

func (u *lessonUsecase) GetLesson(teacherID, lessonID string) (*domain.Lesson, error) {
	lesson, err := u.lessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil || lesson.TeacherID != teacherID {
		return nil, ErrLessonNotFound
	}
	return lesson, nil
}

// CreateLesson records a lesson entered directly in the CRM. It gets the
// same per-(teacher,student) number sequence as projected lessons but no
// google_event_id; a later sync can pair it if the teacher also creates
// the event in their calendar.
func (u *lessonUsecase) CreateLesson(teacherID string, req *lessondto.CreateLessonRequest) (*domain.Lesson, error) {
	lesson := &domain.Lesson{
		TeacherID:   teacherID,
		StudentID:   req.StudentID,
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
		Status:      domain.LessonStatusScheduled,
	}
	if err := u.lessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// UpdateLesson applies a user edit. This is the "local edit" that can
// later diverge from the calendar event and trigger conflict handling.
func (u *lessonUsecase) UpdateLesson(teacherID, lessonID string, req *lessondto.UpdateLessonRequest) (*domain.Lesson, error) {
	lesson, err := u.GetLesson(teacherID, lessonID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.ScheduledAt != nil {
		lesson.ScheduledAt = *req.ScheduledAt
	}
	if req.Notes != nil {
		lesson.Notes = *req.Notes
	}
	if req.Status != nil {
		lesson.Status = *req.Status
	}

	if err := u.lessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (u *lessonUsecase) CancelLesson(teacherID, lessonID string) (*domain.Lesson, error) {
	lesson, err := u.GetLesson(teacherID, lessonID)
	if err != nil {
		return nil, err
	}

	lesson.Status = domain.LessonStatusCancelled
	if err := u.lessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (u *lessonUsecase) ListStudents(teacherID string) ([]*repository.StudentSummary, error) {
	return u.lessonRepo.ListStudentsByTeacher(teacherID)
}
