package scheduler

import (
	"context"
	"log"
	"time"

	authrepo "melodica-backend/internal/auth/repository"
	syncusecase "melodica-backend/internal/sync/usecase"
)

// CalendarSyncScheduler periodically runs the sync and reconciliation
// passes for every connected teacher, plus a decay sweep for stale
// conflicts. All per-teacher work is sequential.
type CalendarSyncScheduler struct {
	syncUsecase   syncusecase.SyncUsecase
	reviewQueue   *syncusecase.ReviewQueue
	userRepo      authrepo.UserRepository
	syncInterval  time.Duration
	sweepInterval time.Duration
	windowPast    time.Duration
	windowFuture  time.Duration
	stopChan      chan struct{}
}

// NewCalendarSyncScheduler creates a new scheduler
func NewCalendarSyncScheduler(
	syncUsecase syncusecase.SyncUsecase,
	reviewQueue *syncusecase.ReviewQueue,
	userRepo authrepo.UserRepository,
	syncInterval, sweepInterval, windowPast, windowFuture time.Duration,
) *CalendarSyncScheduler {
	return &CalendarSyncScheduler{
		syncUsecase:   syncUsecase,
		reviewQueue:   reviewQueue,
		userRepo:      userRepo,
		syncInterval:  syncInterval,
		sweepInterval: sweepInterval,
		windowPast:    windowPast,
		windowFuture:  windowFuture,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *CalendarSyncScheduler) Start() {
	log.Printf("[Scheduler] Starting calendar sync scheduler (sync: %s, sweep: %s)", s.syncInterval, s.sweepInterval)

	go func() {
		// Run immediately on start
		s.runSyncPass()
		s.runDecaySweep()

		syncTicker := time.NewTicker(s.syncInterval)
		sweepTicker := time.NewTicker(s.sweepInterval)
		defer syncTicker.Stop()
		defer sweepTicker.Stop()

		for {
			select {
			case <-syncTicker.C:
				s.runSyncPass()
			case <-sweepTicker.C:
				s.runDecaySweep()
			case <-s.stopChan:
				log.Println("[Scheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *CalendarSyncScheduler) Stop() {
	close(s.stopChan)
}

// runSyncPass visits every connected teacher: projection first, then the
// reconciliation pass over the same window. One teacher's failure never
// stops the loop.
func (s *CalendarSyncScheduler) runSyncPass() {
	teachers, err := s.userRepo.FindConnectedTeachers()
	if err != nil {
		log.Printf("[Scheduler] Failed to list connected teachers: %v", err)
		return
	}
	if len(teachers) == 0 {
		return
	}

	now := time.Now()
	timeMin := now.Add(-s.windowPast)
	timeMax := now.Add(s.windowFuture)

	for _, teacher := range teachers {
		ctx := context.Background()

		summary, err := s.syncUsecase.SyncCalendar(ctx, teacher.ID, timeMin, timeMax)
		if err != nil {
			log.Printf("[Scheduler] Sync failed for teacher %s: %v", teacher.ID, err)
			continue
		}
		log.Printf("[Scheduler] Synced teacher %s: created=%d updated=%d skipped=%d failed=%d",
			teacher.ID, summary.Created, summary.Updated, summary.Skipped, summary.Failed)

		reconcile, err := s.syncUsecase.ReconcileCalendar(ctx, teacher.ID, timeMin, timeMax)
		if err != nil {
			log.Printf("[Scheduler] Reconcile failed for teacher %s: %v", teacher.ID, err)
			continue
		}
		if reconcile.AutoResolved > 0 || reconcile.Escalated > 0 || reconcile.Failed > 0 {
			log.Printf("[Scheduler] Reconciled teacher %s: checked=%d auto=%d escalated=%d failed=%d",
				teacher.ID, reconcile.Checked, reconcile.AutoResolved, reconcile.Escalated, reconcile.Failed)
		}
	}
}

func (s *CalendarSyncScheduler) runDecaySweep() {
	resolved, failed := s.reviewQueue.AutoResolveStale()
	if resolved > 0 || failed > 0 {
		log.Printf("[Scheduler] Decay sweep: resolved=%d failed=%d", resolved, failed)
	}
}
