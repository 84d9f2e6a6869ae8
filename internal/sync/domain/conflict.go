package domain

import "time"

// Verdict is the outcome of the conflict resolution policy.
type Verdict string

const (
	VerdictUseLocal     Verdict = "use_local"
	VerdictUseRemote    Verdict = "use_remote"
	VerdictManualReview Verdict = "manual_review"
)

// StringDiff holds the two sides of a diverged text field.
type StringDiff struct {
	Local  string `json:"local"`
	Remote string `json:"remote"`
}

// TimeDiff holds the two sides of a diverged instant field.
type TimeDiff struct {
	Local  time.Time `json:"local"`
	Remote time.Time `json:"remote"`
}

// FieldConflicts lists the lesson fields that diverged from the remote
// event. A nil member means that field matches.
type FieldConflicts struct {
	Title       *StringDiff `json:"title,omitempty"`
	ScheduledAt *TimeDiff   `json:"scheduled_at,omitempty"`
	Notes       *StringDiff `json:"notes,omitempty"`
}

// ConflictInfo is the structured result of comparing a lesson to its
// paired remote event.
type ConflictInfo struct {
	LessonUpdated    time.Time      `json:"lesson_updated"`
	RemoteUpdated    time.Time      `json:"remote_updated"`
	TimeDifferenceMs int64          `json:"time_difference_ms"`
	Fields           FieldConflicts `json:"fields"`
}
