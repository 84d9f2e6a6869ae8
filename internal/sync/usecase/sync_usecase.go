package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	authrepo "melodica-backend/internal/auth/repository"
	lessonrepo "melodica-backend/internal/lesson/repository"
	syncdomain "melodica-backend/internal/sync/domain"

	"golang.org/x/oauth2"
)

// syncUsecase implements SyncUsecase
type syncUsecase struct {
	userRepo     authrepo.UserRepository
	lessonRepo   lessonrepo.LessonRepository
	conflictRepo lessonrepo.SyncConflictRepository
	provider     CalendarProvider
	provisioner  StudentProvisioner
	classifier   *EventClassifier
	projector    *LessonProjector
	applier      *ResolutionApplier
	resolverCfg  ResolverConfig
	calendarID   string
}

// NewSyncUsecase creates a new instance of syncUsecase
func NewSyncUsecase(
	userRepo authrepo.UserRepository,
	lessonRepo lessonrepo.LessonRepository,
	conflictRepo lessonrepo.SyncConflictRepository,
	provider CalendarProvider,
	provisioner StudentProvisioner,
	classifier *EventClassifier,
	applier *ResolutionApplier,
	resolverCfg ResolverConfig,
	calendarID string,
) SyncUsecase {
	if classifier == nil {
		classifier = NewEventClassifier(nil)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &syncUsecase{
		userRepo:     userRepo,
		lessonRepo:   lessonRepo,
		conflictRepo: conflictRepo,
		provider:     provider,
		provisioner:  provisioner,
		classifier:   classifier,
		projector:    NewLessonProjector(lessonRepo, classifier),
		applier:      applier,
		resolverCfg:  resolverCfg,
		calendarID:   calendarID,
	}
}

// SyncCalendar runs a full-sync pass: enumerate events in the window,
// classify, resolve the student identity, and project. Events are
// processed sequentially in provider order; one event's failure is logged
// and counted, never aborting the batch. A teacher without a calendar
// credential gets a Connected=false summary.
func (u *syncUsecase) SyncCalendar(ctx context.Context, teacherID string, timeMin, timeMax time.Time) (*SyncSummary, error) {
	teacher, err := u.userRepo.FindByID(teacherID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, errors.New("teacher not found")
	}
	if teacher.AccessToken == "" {
		return &SyncSummary{Connected: false}, nil
	}

	events, err := u.provider.ListEvents(ctx, teacher.AccessToken, teacher.RefreshToken, u.calendarID, timeMin, timeMax, "", u.makeTokenUpdateCallback(teacherID))
	if err != nil {
		// Covers token-refresh failure and API unavailability: fatal for
		// this invocation only.
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	summary := &SyncSummary{Connected: true}
	for _, event := range events {
		if !u.classifier.IsRelevant(event, "") {
			summary.Skipped++
			continue
		}

		studentEmail := pickStudentEmail(teacher.Email, event)
		if studentEmail == "" {
			log.Printf("[Sync] Event %s has no student attendee, skipping", event.ID)
			summary.Skipped++
			continue
		}

		student, err := u.provisioner.EnsureUserForEmail(studentEmail)
		if err != nil {
			log.Printf("[Sync] Failed to provision student %s for event %s: %v", studentEmail, event.ID, err)
			summary.Failed++
			continue
		}

		created, err := u.projector.ProjectEvent(event, teacher.ID, student.ID, studentEmail)
		if err != nil {
			if errors.Is(err, ErrEventNotRelevant) {
				summary.Skipped++
				continue
			}
			log.Printf("[Sync] Failed to project event %s: %v", event.ID, err)
			summary.Failed++
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}
	return summary, nil
}

// ReconcileCalendar runs the divergence pass: for every event paired with
// an existing lesson, detect field-level divergence, resolve it under the
// policy, and apply the verdict. A lesson with a pending conflict is left
// alone until the human or the decay sweep acts.
func (u *syncUsecase) ReconcileCalendar(ctx context.Context, teacherID string, timeMin, timeMax time.Time) (*ReconcileSummary, error) {
	teacher, err := u.userRepo.FindByID(teacherID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, errors.New("teacher not found")
	}
	if teacher.AccessToken == "" {
		return &ReconcileSummary{Connected: false}, nil
	}

	events, err := u.provider.ListEvents(ctx, teacher.AccessToken, teacher.RefreshToken, u.calendarID, timeMin, timeMax, "", u.makeTokenUpdateCallback(teacherID))
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	summary := &ReconcileSummary{Connected: true}
	for _, event := range events {
		lesson, err := u.lessonRepo.FindByGoogleEventID(event.ID)
		if err != nil {
			log.Printf("[Sync] Failed to load lesson for event %s: %v", event.ID, err)
			summary.Failed++
			continue
		}
		if lesson == nil {
			continue
		}
		summary.Checked++

		pending, err := u.conflictRepo.HasPendingForLesson(lesson.ID)
		if err != nil {
			log.Printf("[Sync] Failed to check pending conflict for lesson %s: %v", lesson.ID, err)
			summary.Failed++
			continue
		}
		if pending {
			continue
		}

		info := DetectConflict(lesson, event)
		if info == nil {
			continue
		}

		verdict := ResolveConflict(info, u.resolverCfg)
		if err := u.applier.Apply(lesson, event, verdict); err != nil {
			log.Printf("[Sync] Failed to apply %s for lesson %s: %v", verdict, lesson.ID, err)
			summary.Failed++
			continue
		}
		if verdict == syncdomain.VerdictManualReview {
			summary.Escalated++
		} else {
			summary.AutoResolved++
		}
	}
	return summary, nil
}

// makeTokenUpdateCallback persists rotated OAuth tokens back onto the
// teacher record so the next invocation uses the fresh credential.
func (u *syncUsecase) makeTokenUpdateCallback(userID string) syncdomain.TokenUpdateFunc {
	return func(token *oauth2.Token) error {
		user, err := u.userRepo.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return nil
		}

		user.AccessToken = token.AccessToken
		if token.RefreshToken != "" {
			user.RefreshToken = token.RefreshToken
		}
		user.TokenExpiry = token.Expiry
		return u.userRepo.Update(user)
	}
}

// pickStudentEmail returns the first attendee that is not the teacher.
func pickStudentEmail(teacherEmail string, event *syncdomain.RemoteEvent) string {
	for _, attendee := range event.Attendees {
		if !strings.EqualFold(attendee, teacherEmail) {
			return attendee
		}
	}
	return ""
}
