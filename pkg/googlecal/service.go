package googlecal

import (
	"context"
	"fmt"
	"time"

	syncdomain "melodica-backend/internal/sync/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenUpdateFunc is a callback function that handles token updates
type TokenUpdateFunc = syncdomain.TokenUpdateFunc

type Service struct {
	clientID     string
	clientSecret string
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			fmt.Printf("Failed to update token: %v\n", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// getCalendarService creates a Calendar service with the user's tokens.
// A stored refresh token forces an immediate refresh so an expired access
// token never reaches the API.
func (s *Service) getCalendarService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh TokenUpdateFunc) (*calendar.Service, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := config.TokenSource(ctx, token)

	// Wrap token source to detect refreshes
	wrappedSource := &notifyTokenSource{
		src:      tokenSource,
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}

	return srv, nil
}

// ListEvents retrieves events in the given time range, expanded to single
// instances in start order. All-day and malformed events are dropped
// during conversion.
func (s *Service) ListEvents(ctx context.Context, accessToken, refreshToken, calendarID string, timeMin, timeMax time.Time, query string, onTokenRefresh TokenUpdateFunc) ([]*syncdomain.RemoteEvent, error) {
	srv, err := s.getCalendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	call := srv.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250)
	if query != "" {
		call = call.Q(query)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events: %v", err)
	}

	events := make([]*syncdomain.RemoteEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		if event := convertCalendarEvent(item); event != nil {
			events = append(events, event)
		}
	}
	return events, nil
}

// convertCalendarEvent maps a provider event to the internal snapshot.
// Returns nil for events without an id or a concrete start datetime
// (all-day events only carry a date).
func convertCalendarEvent(item *calendar.Event) *syncdomain.RemoteEvent {
	if item == nil || item.Id == "" || item.Start == nil || item.Start.DateTime == "" {
		return nil
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return nil
	}

	updated, err := time.Parse(time.RFC3339, item.Updated)
	if err != nil {
		updated = time.Time{}
	}

	attendees := make([]string, 0, len(item.Attendees))
	for _, attendee := range item.Attendees {
		if attendee.Email != "" {
			attendees = append(attendees, attendee.Email)
		}
	}

	return &syncdomain.RemoteEvent{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Start:       start,
		Attendees:   attendees,
		Updated:     updated,
	}
}
