package usecase

import (
	"strings"

	syncdomain "melodica-backend/internal/sync/domain"
)

// LessonMatcher decides whether an event's text describes a teaching
// lesson. Injectable so studios can tune the heuristic.
type LessonMatcher func(summary, description string) bool

var defaultLessonKeywords = []string{
	"lesson", "class", "recital", "rehearsal", "masterclass", "studio",
	"piano", "guitar", "violin", "cello", "voice", "vocal", "drum", "flute",
}

// DefaultLessonMatcher matches on a keyword list over summary and
// description, case-insensitive.
func DefaultLessonMatcher(summary, description string) bool {
	text := strings.ToLower(summary + " " + description)
	for _, kw := range defaultLessonKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// EventClassifier gates which remote events reach storage at all.
type EventClassifier struct {
	matcher LessonMatcher
}

// NewEventClassifier creates a classifier; a nil matcher falls back to
// DefaultLessonMatcher.
func NewEventClassifier(matcher LessonMatcher) *EventClassifier {
	if matcher == nil {
		matcher = DefaultLessonMatcher
	}
	return &EventClassifier{matcher: matcher}
}

// IsRelevant reports whether the event represents a teaching lesson. When
// studentEmail is non-empty the student must also appear among attendees,
// in the summary, or in the description. Pure predicate, no side effects.
func (c *EventClassifier) IsRelevant(event *syncdomain.RemoteEvent, studentEmail string) bool {
	if event == nil || event.ID == "" || event.Start.IsZero() {
		return false
	}
	if !c.matcher(event.Summary, event.Description) {
		return false
	}
	if studentEmail == "" {
		return true
	}

	email := strings.ToLower(studentEmail)
	for _, attendee := range event.Attendees {
		if strings.ToLower(attendee) == email {
			return true
		}
	}
	return strings.Contains(strings.ToLower(event.Summary), email) ||
		strings.Contains(strings.ToLower(event.Description), email)
}
