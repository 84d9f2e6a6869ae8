package usecase

import (
	"errors"
	"fmt"
	"log"
	"time"

	lessondomain "melodica-backend/internal/lesson/domain"
	lessonrepo "melodica-backend/internal/lesson/repository"
)

// ErrConflictNotFound is returned when a manual decision targets a
// conflict that does not exist.
var ErrConflictNotFound = errors.New("conflict not found")

// DefaultConflictTTL is how long a conflict may sit pending before the
// decay sweep silently prefers the local record.
const DefaultConflictTTL = 7 * 24 * time.Hour

// ReviewQueue lists, accepts human decisions on, and time-decays
// unresolved sync conflicts.
type ReviewQueue struct {
	conflictRepo lessonrepo.SyncConflictRepository
	lessonRepo   lessonrepo.LessonRepository
	conflictTTL  time.Duration
}

// NewReviewQueue creates a review queue; a non-positive TTL falls back to
// DefaultConflictTTL.
func NewReviewQueue(conflictRepo lessonrepo.SyncConflictRepository, lessonRepo lessonrepo.LessonRepository, conflictTTL time.Duration) *ReviewQueue {
	if conflictTTL <= 0 {
		conflictTTL = DefaultConflictTTL
	}
	return &ReviewQueue{
		conflictRepo: conflictRepo,
		lessonRepo:   lessonRepo,
		conflictTTL:  conflictTTL,
	}
}

// ListPending returns the pending conflicts owned by the teacher's
// lessons. A failing query is logged and yields an empty list, never an
// error.
func (q *ReviewQueue) ListPending(teacherID string) []*lessondomain.SyncConflict {
	conflicts, err := q.conflictRepo.FindPendingByTeacherID(teacherID)
	if err != nil {
		log.Printf("[ReviewQueue] Failed to list pending conflicts for teacher %s: %v", teacherID, err)
		return []*lessondomain.SyncConflict{}
	}
	return conflicts
}

// ResolveManually applies a human decision to a pending conflict.
//
// use_remote copies the stored remote snapshot onto the lesson without
// bumping updated_at, so the very next sync pass does not see the
// resolution itself as a fresh local edit. use_local leaves the lesson
// unchanged. Both mark the conflict resolved. Resolving an
// already-resolved conflict is a no-op.
func (q *ReviewQueue) ResolveManually(conflictID string, choice lessondomain.ConflictResolution) error {
	if choice != lessondomain.ResolutionUseLocal && choice != lessondomain.ResolutionUseRemote {
		return fmt.Errorf("invalid resolution %q", choice)
	}

	conflict, err := q.conflictRepo.FindByID(conflictID)
	if err != nil {
		return err
	}
	if conflict == nil {
		return ErrConflictNotFound
	}
	if conflict.Status == lessondomain.ConflictStatusResolved {
		return nil
	}

	if choice == lessondomain.ResolutionUseRemote {
		snapshot := conflict.ConflictData
		err := q.lessonRepo.UpdateColumns(conflict.LessonID, map[string]interface{}{
			"title":        snapshot.RemoteTitle,
			"scheduled_at": snapshot.RemoteScheduledAt,
			"notes":        snapshot.RemoteNotes,
		})
		if err != nil {
			return fmt.Errorf("apply remote snapshot to lesson %s: %w", conflict.LessonID, err)
		}
	}

	now := time.Now()
	conflict.Status = lessondomain.ConflictStatusResolved
	conflict.Resolution = &choice
	conflict.ResolvedAt = &now
	return q.conflictRepo.Update(conflict)
}

// AutoResolveStale sweeps conflicts left pending past the TTL and
// resolves each as use_local. Per-conflict failures are counted but do
// not stop the sweep; rerunning only affects conflicts still pending.
func (q *ReviewQueue) AutoResolveStale() (resolved, failed int) {
	cutoff := time.Now().Add(-q.conflictTTL)
	stale, err := q.conflictRepo.FindPendingOlderThan(cutoff)
	if err != nil {
		log.Printf("[ReviewQueue] Decay sweep query failed: %v", err)
		return 0, 0
	}

	for _, conflict := range stale {
		if err := q.ResolveManually(conflict.ID, lessondomain.ResolutionUseLocal); err != nil {
			log.Printf("[ReviewQueue] Decay sweep failed for conflict %s: %v", conflict.ID, err)
			failed++
			continue
		}
		resolved++
	}
	return resolved, failed
}
