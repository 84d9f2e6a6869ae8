package domain

import "time"

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User is a teacher or student profile. Students discovered as calendar
// attendees without an account get a "shadow" provider placeholder.
type User struct {
	ID         string `json:"id" gorm:"primaryKey"`
	Email      string `json:"email" gorm:"uniqueIndex;not null"`
	Password   string `json:"-"` // Never return password in JSON
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	Provider   string `json:"provider"` // "email", "google" or "shadow"
	Role       string `json:"role" gorm:"index;default:teacher"`
	Instrument string `json:"instrument,omitempty"`

	// Google Calendar credential, present only for connected teachers
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	TokenExpiry  time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalendarConnected reports whether the user has stored calendar tokens.
func (u *User) CalendarConnected() bool {
	return u.AccessToken != ""
}

type RefreshToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
