package usecase

import (
	"context"
	"time"

	authdomain "melodica-backend/internal/auth/domain"
	syncdomain "melodica-backend/internal/sync/domain"
)

// CalendarProvider lists events from the external calendar service.
// Implemented by pkg/googlecal; faked in tests.
type CalendarProvider interface {
	ListEvents(ctx context.Context, accessToken, refreshToken, calendarID string, timeMin, timeMax time.Time, query string, onTokenRefresh syncdomain.TokenUpdateFunc) ([]*syncdomain.RemoteEvent, error)
}

// StudentProvisioner resolves or creates the local profile for a calendar
// attendee (shadow-user creation for unknown emails).
type StudentProvisioner interface {
	EnsureUserForEmail(email string) (*authdomain.User, error)
}

// SyncSummary is the per-invocation result of a full-sync pass. Connected
// is false when the teacher has no calendar credential, an expected
// steady state rather than an error.
type SyncSummary struct {
	Connected bool `json:"connected"`
	Created   int  `json:"created"`
	Updated   int  `json:"updated"`
	Skipped   int  `json:"skipped"`
	Failed    int  `json:"failed"`
}

// ReconcileSummary is the per-invocation result of a reconciliation pass.
type ReconcileSummary struct {
	Connected    bool `json:"connected"`
	Checked      int  `json:"checked"`
	AutoResolved int  `json:"auto_resolved"`
	Escalated    int  `json:"escalated"`
	Failed       int  `json:"failed"`
}

// SyncUsecase drives the calendar-to-lesson pipeline for one teacher.
type SyncUsecase interface {
	SyncCalendar(ctx context.Context, teacherID string, timeMin, timeMax time.Time) (*SyncSummary, error)
	ReconcileCalendar(ctx context.Context, teacherID string, timeMin, timeMax time.Time) (*ReconcileSummary, error)
}
