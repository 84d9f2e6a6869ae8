package repository

import (
	"errors"
	"time"

	"melodica-backend/internal/lesson/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormSyncConflictRepository implements SyncConflictRepository using GORM
type gormSyncConflictRepository struct {
	db *gorm.DB
}

// NewSyncConflictRepository creates a new GORM-based SyncConflictRepository
func NewSyncConflictRepository(db *gorm.DB) SyncConflictRepository {
	return &gormSyncConflictRepository{db: db}
}

func (r *gormSyncConflictRepository) Create(conflict *domain.SyncConflict) error {
	if conflict.ID == "" {
		conflict.ID = uuid.New().String()
	}
	if conflict.Status == "" {
		conflict.Status = domain.ConflictStatusPending
	}
	conflict.CreatedAt = time.Now()
	return r.db.Create(conflict).Error
}

func (r *gormSyncConflictRepository) FindByID(id string) (*domain.SyncConflict, error) {
	var conflict domain.SyncConflict
	err := r.db.Where("id = ?", id).First(&conflict).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conflict, nil
}

func (r *gormSyncConflictRepository) FindPendingByTeacherID(teacherID string) ([]*domain.SyncConflict, error) {
	var conflicts []*domain.SyncConflict
	err := r.db.
		Joins("JOIN lessons ON lessons.id = sync_conflicts.lesson_id").
		Where("sync_conflicts.status = ? AND lessons.teacher_id = ?", domain.ConflictStatusPending, teacherID).
		Order("sync_conflicts.created_at DESC").
		Find(&conflicts).Error
	if err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *gormSyncConflictRepository) HasPendingForLesson(lessonID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.SyncConflict{}).
		Where("lesson_id = ? AND status = ?", lessonID, domain.ConflictStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormSyncConflictRepository) FindPendingOlderThan(cutoff time.Time) ([]*domain.SyncConflict, error) {
	var conflicts []*domain.SyncConflict
	err := r.db.
		Where("status = ? AND created_at < ?", domain.ConflictStatusPending, cutoff).
		Order("created_at ASC").
		Find(&conflicts).Error
	if err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *gormSyncConflictRepository) Update(conflict *domain.SyncConflict) error {
	return r.db.Save(conflict).Error
}
