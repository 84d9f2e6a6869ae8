package domain

import "time"

// ConflictStatus tracks whether a sync conflict still needs a decision
type ConflictStatus string

const (
	ConflictStatusPending  ConflictStatus = "pending"
	ConflictStatusResolved ConflictStatus = "resolved"
)

// ConflictResolution is the recorded human (or decay-sweep) decision
type ConflictResolution string

const (
	ResolutionUseLocal  ConflictResolution = "use_local"
	ResolutionUseRemote ConflictResolution = "use_remote"
)

// ConflictData snapshots the remote field values at detection time so a
// later manual decision can be applied even if the event has moved on.
type ConflictData struct {
	RemoteTitle       string    `json:"remote_title"`
	RemoteScheduledAt time.Time `json:"remote_scheduled_at"`
	RemoteNotes       string    `json:"remote_notes"`
	RemoteUpdated     time.Time `json:"remote_updated"`
}

// SyncConflict records a concurrent-edit escalation for human review.
// Created by the resolution applier, mutated only by a manual decision or
// the decay sweep; the automatic sync pass never touches it once created.
type SyncConflict struct {
	ID            string              `json:"id" gorm:"primaryKey"`
	LessonID      string              `json:"lesson_id" gorm:"index;not null"`
	GoogleEventID string              `json:"google_event_id" gorm:"index;not null"`
	ConflictData  ConflictData        `json:"conflict_data" gorm:"serializer:json"`
	Status        ConflictStatus      `json:"status" gorm:"index;default:pending"`
	Resolution    *ConflictResolution `json:"resolution,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	ResolvedAt    *time.Time          `json:"resolved_at,omitempty"`
}
