package domain

import (
	"time"

	"golang.org/x/oauth2"
)

// TokenUpdateFunc persists a refreshed OAuth token back to storage.
type TokenUpdateFunc func(token *oauth2.Token) error

// RemoteEvent is a provider-independent snapshot of a calendar event.
// It is read-only to this system; a later poll may return a different
// snapshot for the same ID.
type RemoteEvent struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	Attendees   []string  `json:"attendees,omitempty"`
	Updated     time.Time `json:"updated"`
}
