package usecase

import (
	"testing"
	"time"

	authdomain "melodica-backend/internal/auth/domain"
	lessondomain "melodica-backend/internal/lesson/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory database with the sync schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&authdomain.User{}, &lessondomain.Lesson{}, &lessondomain.SyncConflict{})
	require.NoError(t, err)

	return db
}

// setUpdatedAt pins a lesson's updated_at to a known instant, bypassing
// the repository's automatic bump
func setUpdatedAt(t *testing.T, db *gorm.DB, lessonID string, at time.Time) {
	t.Helper()
	err := db.Model(&lessondomain.Lesson{}).Where("id = ?", lessonID).
		UpdateColumn("updated_at", at).Error
	require.NoError(t, err)
}

// setConflictCreatedAt ages a conflict for decay-sweep tests
func setConflictCreatedAt(t *testing.T, db *gorm.DB, conflictID string, at time.Time) {
	t.Helper()
	err := db.Model(&lessondomain.SyncConflict{}).Where("id = ?", conflictID).
		UpdateColumn("created_at", at).Error
	require.NoError(t, err)
}
