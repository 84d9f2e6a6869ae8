package usecase

import (
	"errors"

	lessondomain "melodica-backend/internal/lesson/domain"
	lessonrepo "melodica-backend/internal/lesson/repository"
	syncdomain "melodica-backend/internal/sync/domain"
)

// ErrEventNotRelevant is returned when an event fails the classifier gate.
var ErrEventNotRelevant = errors.New("event is not a lesson")

// LessonProjector idempotently creates or updates local lessons from
// classified remote events.
type LessonProjector struct {
	lessonRepo lessonrepo.LessonRepository
	classifier *EventClassifier
}

// NewLessonProjector creates a projector backed by the given repository.
func NewLessonProjector(lessonRepo lessonrepo.LessonRepository, classifier *EventClassifier) *LessonProjector {
	if classifier == nil {
		classifier = NewEventClassifier(nil)
	}
	return &LessonProjector{lessonRepo: lessonRepo, classifier: classifier}
}

// ProjectEvent upserts the lesson paired with the event, keyed by
// google_event_id. Re-running on the same event any number of times never
// creates a duplicate; it converges to an update-in-place. Returns whether
// a new lesson was created.
func (p *LessonProjector) ProjectEvent(event *syncdomain.RemoteEvent, teacherID, studentID, studentEmail string) (bool, error) {
	if !p.classifier.IsRelevant(event, studentEmail) {
		return false, ErrEventNotRelevant
	}

	existing, err := p.lessonRepo.FindByGoogleEventID(event.ID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, p.updateFromEvent(existing, event)
	}

	eventID := event.ID
	lesson := &lessondomain.Lesson{
		TeacherID:     teacherID,
		StudentID:     studentID,
		Title:         event.Summary,
		ScheduledAt:   event.Start,
		Status:        lessondomain.LessonStatusScheduled,
		GoogleEventID: &eventID,
	}
	if err := p.lessonRepo.Create(lesson); err != nil {
		if errors.Is(err, lessonrepo.ErrDuplicateLesson) {
			// Lost a race with a concurrent sync invocation for the same
			// event id; converge on the update path.
			existing, ferr := p.lessonRepo.FindByGoogleEventID(event.ID)
			if ferr == nil && existing != nil {
				return false, p.updateFromEvent(existing, event)
			}
		}
		return false, err
	}
	return true, nil
}

// updateFromEvent overwrites the calendar-owned fields (title and start
// time) from the event. Notes are intentionally left untouched here; full
// reconciliation is the conflict detector's job, run separately.
func (p *LessonProjector) updateFromEvent(lesson *lessondomain.Lesson, event *syncdomain.RemoteEvent) error {
	if lesson.Title == event.Summary && lesson.ScheduledAt.Equal(event.Start) {
		return nil
	}
	lesson.Title = event.Summary
	lesson.ScheduledAt = event.Start
	return p.lessonRepo.Update(lesson)
}
