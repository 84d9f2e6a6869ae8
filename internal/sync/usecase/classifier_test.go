package usecase

import (
	"testing"
	"time"

	syncdomain "melodica-backend/internal/sync/domain"

	"github.com/stretchr/testify/assert"
)

func lessonEvent(summary string) *syncdomain.RemoteEvent {
	return &syncdomain.RemoteEvent{
		ID:      "evt-1",
		Summary: summary,
		Start:   time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		Updated: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestClassifierRequiresIDAndStart(t *testing.T) {
	c := NewEventClassifier(nil)

	assert.False(t, c.IsRelevant(nil, ""))

	noID := lessonEvent("Piano Lesson")
	noID.ID = ""
	assert.False(t, c.IsRelevant(noID, ""))

	noStart := lessonEvent("Piano Lesson")
	noStart.Start = time.Time{}
	assert.False(t, c.IsRelevant(noStart, ""))
}

func TestClassifierKeywordHeuristic(t *testing.T) {
	c := NewEventClassifier(nil)

	assert.True(t, c.IsRelevant(lessonEvent("Piano Lesson"), ""))
	assert.True(t, c.IsRelevant(lessonEvent("VIOLIN masterclass"), ""))
	assert.False(t, c.IsRelevant(lessonEvent("Dentist appointment"), ""))

	// Description text counts too
	ev := lessonEvent("Weekly slot")
	ev.Description = "guitar lesson with Ana"
	assert.True(t, c.IsRelevant(ev, ""))
}

func TestClassifierInjectableMatcher(t *testing.T) {
	c := NewEventClassifier(func(summary, description string) bool {
		return summary == "Special"
	})

	assert.True(t, c.IsRelevant(lessonEvent("Special"), ""))
	assert.False(t, c.IsRelevant(lessonEvent("Piano Lesson"), ""))
}

func TestClassifierStudentEmailFilter(t *testing.T) {
	c := NewEventClassifier(nil)

	ev := lessonEvent("Piano Lesson")
	ev.Attendees = []string{"teacher@studio.example", "Ana@Example.com"}

	assert.True(t, c.IsRelevant(ev, "ana@example.com"), "attendee match is case-insensitive")
	assert.False(t, c.IsRelevant(ev, "bob@example.com"))

	// Student mentioned in summary or description also passes
	inSummary := lessonEvent("Piano Lesson bob@example.com")
	assert.True(t, c.IsRelevant(inSummary, "bob@example.com"))

	inDescription := lessonEvent("Piano Lesson")
	inDescription.Description = "makeup slot for bob@example.com"
	assert.True(t, c.IsRelevant(inDescription, "bob@example.com"))
}
