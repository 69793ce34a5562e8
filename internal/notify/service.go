package notify

import (
	"context"
	"fmt"
	"time"

	"moneta/internal/metrics"
	"moneta/internal/storage"

	"github.com/vmkteam/embedlog"
)

const (
	DefaultTitle = "Reminder"
	DefaultBody  = "Time to record your accounts"
)

// Service records notifications and pushes them to the user's device.
type Service struct {
	db     *storage.DB
	pusher Pusher
	log    embedlog.Logger
	now    func() time.Time
}

// NewService creates a notification Service.
func NewService(db *storage.DB, p Pusher, log embedlog.Logger) *Service {
	return &Service{db: db, pusher: p, log: log, now: time.Now}
}

// Deliver stores a notification for the user and pushes it when the user has
// registered a device. Empty title or body fall back to the defaults.
func (s *Service) Deliver(ctx context.Context, userID, title, body string) error {
	if title == "" {
		title = DefaultTitle
	}
	if body == "" {
		body = DefaultBody
	}

	n, err := s.db.InsertNotification(ctx, userID, title, body, s.now())
	if err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	user, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user %s: %w", userID, err)
	}
	if user.DeviceToken == "" {
		s.log.Print(ctx, "no device registered", "user_id", userID, "notification_id", n.ID)
		return nil
	}

	err = s.pusher.Push(ctx, user.DeviceToken, title, body)
	metrics.Pushes.WithLabelValues(s.pusher.Name(), metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("push notification %s: %w", n.ID, err)
	}

	s.log.Print(ctx, "notification pushed", "user_id", userID, "notification_id", n.ID, "provider", s.pusher.Name())
	return nil
}
