package repository

import (
	"context"

	"moneta/internal/models"
	"moneta/internal/storage"

	"github.com/vmkteam/embedlog"
)

// Notifications is the read side of delivered notifications.
type Notifications struct {
	db  *storage.DB
	log embedlog.Logger
}

// NewNotifications creates a notification repository.
func NewNotifications(db *storage.DB, log embedlog.Logger) *Notifications {
	return &Notifications{db: db, log: log}
}

// List returns the notifications of a user, newest first. Failures are logged and
// yield an empty list.
func (r *Notifications) List(ctx context.Context, userID string) []models.Notification {
	notifications, err := r.db.ListNotifications(ctx, userID)
	if err != nil {
		r.log.Error(ctx, "failed to list notifications", "err", err, "user_id", userID)
		return []models.Notification{}
	}
	return notifications
}
