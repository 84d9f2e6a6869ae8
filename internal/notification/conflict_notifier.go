package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	authrepo "melodica-backend/internal/auth/repository"
	lessondomain "melodica-backend/internal/lesson/domain"
	"melodica-backend/pkg/fcm"
)

// ConflictNotifier pushes "conflict needs review" notifications to the
// teacher's registered devices. All failures are logged and swallowed;
// a missed push never affects the sync pass.
type ConflictNotifier struct {
	fcmRepo   authrepo.FCMTokenRepository
	fcmClient *fcm.Client
}

func NewConflictNotifier(fcmRepo authrepo.FCMTokenRepository, fcmClient *fcm.Client) *ConflictNotifier {
	return &ConflictNotifier{
		fcmRepo:   fcmRepo,
		fcmClient: fcmClient,
	}
}

func (n *ConflictNotifier) NotifyConflict(teacherID string, conflict *lessondomain.SyncConflict, lessonTitle string) {
	if n.fcmClient == nil {
		return
	}

	tokens, err := n.fcmRepo.GetTokensByUserID(teacherID)
	if err != nil {
		log.Printf("[Notify] Failed to load FCM tokens for teacher %s: %v", teacherID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	data := fcm.NotificationData{
		Title: "Calendar conflict needs review",
		Body:  fmt.Sprintf("\"%s\" was edited both locally and in your calendar", lessonTitle),
		Data: map[string]string{
			"type":        "sync_conflict",
			"conflict_id": conflict.ID,
			"lesson_id":   conflict.LessonID,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	failedTokens, err := n.fcmClient.SendToDevices(ctx, tokenStrings, data)
	if err != nil {
		log.Printf("[Notify] Failed to send conflict notification for %s: %v", conflict.ID, err)
		return
	}

	// Cleanup tokens that no longer work
	for _, token := range failedTokens {
		if err := n.fcmRepo.DeleteToken(token); err != nil {
			log.Printf("[Notify] Failed to delete stale FCM token: %v", err)
		}
	}
}
