package usecase

import (
	lessondomain "melodica-backend/internal/lesson/domain"
	syncdomain "melodica-backend/internal/sync/domain"
)

// DetectConflict compares a lesson to its paired remote event and returns
// a structured diff, or nil when title, scheduled time and notes all match.
// Notes are empty-string-normalized on both sides. Only the differing
// fields are included in the result.
func DetectConflict(lesson *lessondomain.Lesson, event *syncdomain.RemoteEvent) *syncdomain.ConflictInfo {
	var fields syncdomain.FieldConflicts
	conflicted := false

	if lesson.Title != event.Summary {
		fields.Title = &syncdomain.StringDiff{Local: lesson.Title, Remote: event.Summary}
		conflicted = true
	}
	if !lesson.ScheduledAt.Equal(event.Start) {
		fields.ScheduledAt = &syncdomain.TimeDiff{Local: lesson.ScheduledAt, Remote: event.Start}
		conflicted = true
	}
	if lesson.Notes != event.Description {
		fields.Notes = &syncdomain.StringDiff{Local: lesson.Notes, Remote: event.Description}
		conflicted = true
	}

	if !conflicted {
		return nil
	}

	diff := lesson.UpdatedAt.Sub(event.Updated).Milliseconds()
	if diff < 0 {
		diff = -diff
	}

	return &syncdomain.ConflictInfo{
		LessonUpdated:    lesson.UpdatedAt,
		RemoteUpdated:    event.Updated,
		TimeDifferenceMs: diff,
		Fields:           fields,
	}
}
