package googlecal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func TestConvertCalendarEvent(t *testing.T) {
	item := &calendar.Event{
		Id:          "evt-1",
		Summary:     "Piano Lesson",
		Description: "bring sheet music",
		Updated:     "2026-03-05T10:00:00Z",
		Start:       &calendar.EventDateTime{DateTime: "2026-03-10T15:00:00+07:00"},
		Attendees: []*calendar.EventAttendee{
			{Email: "teacher@studio.example"},
			{Email: "ana@example.com"},
			{DisplayName: "No Email"},
		},
	}

	event := convertCalendarEvent(item)
	require.NotNil(t, event)
	assert.Equal(t, "evt-1", event.ID)
	assert.Equal(t, "Piano Lesson", event.Summary)
	assert.Equal(t, "bring sheet music", event.Description)
	assert.Equal(t, []string{"teacher@studio.example", "ana@example.com"}, event.Attendees)

	wantStart, _ := time.Parse(time.RFC3339, "2026-03-10T15:00:00+07:00")
	assert.True(t, event.Start.Equal(wantStart))
	wantUpdated, _ := time.Parse(time.RFC3339, "2026-03-05T10:00:00Z")
	assert.True(t, event.Updated.Equal(wantUpdated))
}

func TestConvertCalendarEventDropsUnusable(t *testing.T) {
	assert.Nil(t, convertCalendarEvent(nil))
	assert.Nil(t, convertCalendarEvent(&calendar.Event{Start: &calendar.EventDateTime{DateTime: "2026-03-10T15:00:00Z"}}), "missing id")
	assert.Nil(t, convertCalendarEvent(&calendar.Event{Id: "evt-1"}), "missing start")

	// All-day events carry only a date, not a datetime.
	allDay := &calendar.Event{
		Id:    "evt-1",
		Start: &calendar.EventDateTime{Date: "2026-03-10"},
	}
	assert.Nil(t, convertCalendarEvent(allDay))

	malformed := &calendar.Event{
		Id:    "evt-1",
		Start: &calendar.EventDateTime{DateTime: "not-a-timestamp"},
	}
	assert.Nil(t, convertCalendarEvent(malformed))
}

func TestConvertCalendarEventToleratesBadUpdated(t *testing.T) {
	item := &calendar.Event{
		Id:      "evt-1",
		Updated: "garbage",
		Start:   &calendar.EventDateTime{DateTime: "2026-03-10T15:00:00Z"},
	}

	event := convertCalendarEvent(item)
	require.NotNil(t, event)
	assert.True(t, event.Updated.IsZero())
}
