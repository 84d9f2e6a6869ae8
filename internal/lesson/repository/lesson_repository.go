package repository

import (
	"errors"
	"fmt"
	"time"

	"melodica-backend/internal/lesson/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// numberRetries bounds the retry-on-conflict loop for the per-pair lesson
// number. Two sync invocations racing on the same (teacher, student) pair
// collide on the unique index and the loser recomputes.
const numberRetries = 3

// gormLessonRepository implements LessonRepository using GORM
type gormLessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository creates a new GORM-based LessonRepository
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &gormLessonRepository{db: db}
}

func (r *gormLessonRepository) Create(lesson *domain.Lesson) error {
	if lesson.ID == "" {
		lesson.ID = uuid.New().String()
	}
	if lesson.Status == "" {
		lesson.Status = domain.LessonStatusScheduled
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()

	var err error
	for attempt := 0; attempt < numberRetries; attempt++ {
		if lesson.LessonTeacherNumber == 0 {
			next, nerr := r.nextLessonNumber(lesson.TeacherID, lesson.StudentID)
			if nerr != nil {
				return nerr
			}
			lesson.LessonTeacherNumber = next
		}

		err = r.db.Create(lesson).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// Unique violation: either the google_event_id already exists
		// (caller converts to an update) or the pair number was taken
		// concurrently. Recompute the number and retry; a stable
		// google_event_id violation falls out of the loop.
		lesson.LessonTeacherNumber = 0
	}
	return fmt.Errorf("%w: %v", ErrDuplicateLesson, err)
}

// nextLessonNumber is the per-relationship lesson ordinal: 1 + the highest
// number already assigned for this (teacher, student) pair.
func (r *gormLessonRepository) nextLessonNumber(teacherID, studentID string) (int, error) {
	var max int
	err := r.db.Model(&domain.Lesson{}).
		Where("teacher_id = ? AND student_id = ?", teacherID, studentID).
		Select("COALESCE(MAX(lesson_teacher_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *gormLessonRepository) FindByID(id string) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.db.Where("id = ?", id).First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *gormLessonRepository) FindByGoogleEventID(eventID string) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.db.Where("google_event_id = ?", eventID).First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *gormLessonRepository) FindByTeacherID(teacherID string, status *domain.LessonStatus, limit, offset int) ([]*domain.Lesson, int64, error) {
	var lessons []*domain.Lesson
	var total int64

	query := r.db.Model(&domain.Lesson{}).Where("teacher_id = ?", teacherID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("scheduled_at DESC").Limit(limit).Offset(offset).Find(&lessons).Error
	return lessons, total, err
}

func (r *gormLessonRepository) Update(lesson *domain.Lesson) error {
	lesson.UpdatedAt = time.Now()
	return r.db.Save(lesson).Error
}

func (r *gormLessonRepository) UpdateColumns(id string, columns map[string]interface{}) error {
	return r.db.Model(&domain.Lesson{}).Where("id = ?", id).UpdateColumns(columns).Error
}

func (r *gormLessonRepository) ListStudentsByTeacher(teacherID string) ([]*StudentSummary, error) {
	var summaries []*StudentSummary
	err := r.db.Model(&domain.Lesson{}).
		Select("student_id, COUNT(*) AS lesson_count, MAX(lesson_teacher_number) AS latest_number").
		Where("teacher_id = ?", teacherID).
		Group("student_id").
		Order("lesson_count DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
