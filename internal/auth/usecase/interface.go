package usecase

import (
	"time"

	authdomain "melodica-backend/internal/auth/domain"
	authdto "melodica-backend/internal/auth/dto"
)

// AuthUsecase defines the authentication and account operations
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	GoogleSignIn(idToken string) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)

	// StoreCalendarTokens saves the Google Calendar credential obtained by
	// the (external) OAuth flow onto the teacher record
	StoreCalendarTokens(userID, accessToken, refreshToken string, expiry time.Time) error

	// EnsureUserForEmail resolves a calendar attendee to a local profile,
	// creating a shadow student when none exists
	EnsureUserForEmail(email string) (*authdomain.User, error)
}
