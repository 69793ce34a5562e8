package storage

import (
	"context"
	"time"

	"moneta/internal/models"

	"github.com/google/uuid"
)

// NotificationTimeLayout is how notification timestamps are rendered.
const NotificationTimeLayout = "2006-01-02 15:04:05"

const reminderColumns = "id, user_id, name, time_of_day, repeat_label, timezone, created_at"

func scanReminder(row interface{ Scan(...any) error }) (*models.Reminder, error) {
	var (
		r         models.Reminder
		repeat    string
		createdAt int64
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.Time, &repeat, &r.Timezone, &createdAt); err != nil {
		return nil, notFound(err)
	}
	r.Repeat = models.Repeat(repeat)
	r.CreatedAt = fromMillis(createdAt)
	return &r, nil
}

// InsertReminder stores a new reminder, assigning an ID when empty.
func (q *Queries) InsertReminder(ctx context.Context, r *models.Reminder) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := q.exec(ctx,
		"INSERT INTO reminders ("+reminderColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.UserID, r.Name, r.Time, string(r.Repeat), r.Timezone, toMillis(r.CreatedAt),
	)
	return err
}

// GetReminder retrieves a reminder of a user by ID.
func (q *Queries) GetReminder(ctx context.Context, userID, id string) (*models.Reminder, error) {
	return scanReminder(q.queryRow(ctx,
		"SELECT "+reminderColumns+" FROM reminders WHERE user_id = ? AND id = ?",
		userID, id,
	))
}

// ReplaceReminder overwrites the editable fields of a reminder.
func (q *Queries) ReplaceReminder(ctx context.Context, r *models.Reminder) (bool, error) {
	res, err := q.exec(ctx,
		"UPDATE reminders SET name = ?, time_of_day = ?, repeat_label = ?, timezone = ? WHERE user_id = ? AND id = ?",
		r.Name, r.Time, string(r.Repeat), r.Timezone, r.UserID, r.ID,
	)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// DeleteReminder removes a reminder of a user.
func (q *Queries) DeleteReminder(ctx context.Context, userID, id string) (bool, error) {
	res, err := q.exec(ctx, "DELETE FROM reminders WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// ListReminders returns the reminders of a user in creation order.
func (q *Queries) ListReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	rows, err := q.query(ctx,
		"SELECT "+reminderColumns+" FROM reminders WHERE user_id = ? ORDER BY created_at, id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []models.Reminder{}
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *r)
	}
	return reminders, rows.Err()
}

// InsertNotification stores a delivered notification.
func (q *Queries) InsertNotification(ctx context.Context, userID, title, body string, at time.Time) (*models.Notification, error) {
	n := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Timestamp: at.Format(NotificationTimeLayout),
	}
	_, err := q.exec(ctx,
		"INSERT INTO notifications (id, user_id, title, body, created_at) VALUES (?, ?, ?, ?, ?)",
		n.ID, n.UserID, n.Title, n.Body, toMillis(at),
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotifications returns the notifications of a user, newest first.
func (q *Queries) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := q.query(ctx,
		"SELECT id, user_id, title, body, created_at FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var (
			n         models.Notification
			createdAt int64
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &createdAt); err != nil {
			return nil, err
		}
		n.Timestamp = fromMillis(createdAt).Format(NotificationTimeLayout)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
