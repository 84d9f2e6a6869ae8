package usecase

import (
	"log"

	lessondomain "melodica-backend/internal/lesson/domain"
	lessonrepo "melodica-backend/internal/lesson/repository"
	syncdomain "melodica-backend/internal/sync/domain"
)

// ConflictNotifier pushes a "needs review" notification to the teacher's
// devices when a conflict is escalated. Best effort.
type ConflictNotifier interface {
	NotifyConflict(teacherID string, conflict *lessondomain.SyncConflict, lessonTitle string)
}

// ResolutionApplier mutates local state or persists a pending-review
// record according to a resolution verdict.
type ResolutionApplier struct {
	lessonRepo   lessonrepo.LessonRepository
	conflictRepo lessonrepo.SyncConflictRepository
	notifier     ConflictNotifier
}

// NewResolutionApplier creates an applier; notifier may be nil.
func NewResolutionApplier(lessonRepo lessonrepo.LessonRepository, conflictRepo lessonrepo.SyncConflictRepository, notifier ConflictNotifier) *ResolutionApplier {
	return &ResolutionApplier{
		lessonRepo:   lessonRepo,
		conflictRepo: conflictRepo,
		notifier:     notifier,
	}
}

// Apply executes the verdict for a lesson/event pair.
//
// use_remote overwrites title, scheduled time and notes and bumps
// updated_at; it is the only path where detected remote values mutate
// local state. use_local is a no-op; the write-back to the calendar happens
// elsewhere. manual_review records a pending conflict and leaves the
// lesson alone; a failed insert is logged and degrades to use_local
// rather than failing the sync pass.
func (a *ResolutionApplier) Apply(lesson *lessondomain.Lesson, event *syncdomain.RemoteEvent, verdict syncdomain.Verdict) error {
	switch verdict {
	case syncdomain.VerdictUseRemote:
		lesson.Title = event.Summary
		lesson.ScheduledAt = event.Start
		lesson.Notes = event.Description
		return a.lessonRepo.Update(lesson)

	case syncdomain.VerdictUseLocal:
		return nil

	case syncdomain.VerdictManualReview:
		conflict := &lessondomain.SyncConflict{
			LessonID:      lesson.ID,
			GoogleEventID: event.ID,
			ConflictData: lessondomain.ConflictData{
				RemoteTitle:       event.Summary,
				RemoteScheduledAt: event.Start,
				RemoteNotes:       event.Description,
				RemoteUpdated:     event.Updated,
			},
			Status: lessondomain.ConflictStatusPending,
		}
		if err := a.conflictRepo.Create(conflict); err != nil {
			log.Printf("[Sync] Failed to record conflict for lesson %s (event %s): %v", lesson.ID, event.ID, err)
			return nil
		}
		if a.notifier != nil {
			a.notifier.NotifyConflict(lesson.TeacherID, conflict, lesson.Title)
		}
		return nil
	}
	return nil
}
