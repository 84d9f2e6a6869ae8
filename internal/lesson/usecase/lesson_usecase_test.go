package usecase

import (
	"testing"
	"time"

	"melodica-backend/internal/lesson/domain"
	lessondto "melodica-backend/internal/lesson/dto"
	"melodica-backend/internal/lesson/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLessonFixture(t *testing.T) LessonUsecase {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Lesson{}))

	return NewLessonUsecase(repository.NewLessonRepository(db))
}

func TestCreateAndGetLesson(t *testing.T) {
	uc := newLessonFixture(t)

	lesson, err := uc.CreateLesson("teacher-1", &lessondto.CreateLessonRequest{
		StudentID:   "student-1",
		Title:       "Piano Lesson",
		ScheduledAt: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		Notes:       "first lesson",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, lesson.LessonTeacherNumber)
	assert.Nil(t, lesson.GoogleEventID)

	got, err := uc.GetLesson("teacher-1", lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "Piano Lesson", got.Title)

	// Another teacher cannot see it.
	_, err = uc.GetLesson("teacher-2", lesson.ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestUpdateLessonPatchesOnlyGivenFields(t *testing.T) {
	uc := newLessonFixture(t)

	lesson, err := uc.CreateLesson("teacher-1", &lessondto.CreateLessonRequest{
		StudentID:   "student-1",
		Title:       "Piano Lesson",
		ScheduledAt: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		Notes:       "keep these notes",
	})
	require.NoError(t, err)

	newTitle := "Piano Lesson with Ana"
	updated, err := uc.UpdateLesson("teacher-1", lesson.ID, &lessondto.UpdateLessonRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "keep these notes", updated.Notes)
	assert.True(t, updated.ScheduledAt.Equal(lesson.ScheduledAt))

	_, err = uc.UpdateLesson("teacher-2", lesson.ID, &lessondto.UpdateLessonRequest{Title: &newTitle})
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestCancelLesson(t *testing.T) {
	uc := newLessonFixture(t)

	lesson, err := uc.CreateLesson("teacher-1", &lessondto.CreateLessonRequest{
		StudentID:   "student-1",
		Title:       "Piano Lesson",
		ScheduledAt: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	cancelled, err := uc.CancelLesson("teacher-1", lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LessonStatusCancelled, cancelled.Status)
}

func TestListLessonsAndStudents(t *testing.T) {
	uc := newLessonFixture(t)

	for i := 0; i < 2; i++ {
		_, err := uc.CreateLesson("teacher-1", &lessondto.CreateLessonRequest{
			StudentID:   "student-1",
			Title:       "Piano Lesson",
			ScheduledAt: time.Date(2026, 3, 10+i, 15, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	lessons, total, err := uc.ListLessons("teacher-1", nil, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, lessons, 2)

	students, err := uc.ListStudents("teacher-1")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, int64(2), students[0].LessonCount)
	assert.Equal(t, 2, students[0].LatestNumber)
}
