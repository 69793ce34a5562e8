package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moneta/internal/models"
	"moneta/internal/storage"

	"github.com/vmkteam/embedlog"
)

const (
	// TriggerMessage is pushed when a reminder is created.
	TriggerMessage = "Time to record your accounts!"
	// JobMessage is the body of the scheduled reminder notification.
	JobMessage = "Time to record your accounts"
)

// ErrInvalidReminder is returned for reminders without a name.
var ErrInvalidReminder = errors.New("invalid reminder")

// Service manages reminders and their scheduled notifications.
type Service struct {
	db        *storage.DB
	scheduler *Scheduler
	deliverer Deliverer
	log       embedlog.Logger
	now       func() time.Time
}

// NewService creates a reminder Service.
func NewService(db *storage.DB, scheduler *Scheduler, d Deliverer, log embedlog.Logger) *Service {
	return &Service{db: db, scheduler: scheduler, deliverer: d, log: log, now: time.Now}
}

func validate(r *models.Reminder) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidReminder)
	}
	if _, _, err := ParseClock(r.Time); err != nil {
		return err
	}

	repeat, err := models.ParseRepeat(string(r.Repeat))
	if err != nil {
		return err
	}
	r.Repeat = repeat

	r.Timezone = strings.TrimSpace(r.Timezone)
	if r.Timezone == "" {
		r.Timezone = DefaultTimezone
	}
	if _, err := LoadTimezone(r.Timezone); err != nil {
		return err
	}

	return nil
}

// Create stores a reminder together with the job for the next occurrence of its
// time, then pushes the creation trigger.
func (s *Service) Create(ctx context.Context, userID string, r models.Reminder) (*models.Reminder, error) {
	if err := validate(&r); err != nil {
		return nil, err
	}
	r.ID = ""
	r.UserID = userID

	delay, err := s.Delay(r.Time, r.Timezone)
	if err != nil {
		return nil, err
	}

	var j *storage.Job
	err = s.db.WithTx(ctx, func(q *storage.Queries) error {
		if err := q.InsertReminder(ctx, &r); err != nil {
			return err
		}
		job, err := s.scheduler.enqueue(ctx, q, userID, r.ID, r.Name, JobMessage, delay)
		j = job
		return err
	})
	if err != nil {
		s.log.Error(ctx, "failed to create reminder", "err", err, "user_id", userID)
		return nil, err
	}
	s.scheduler.scheduled(ctx, j)
	s.log.Print(ctx, "reminder created", "reminder_id", r.ID, "user_id", userID, "time", r.Time, "timezone", r.Timezone, "repeat", r.Repeat)

	if err := s.deliverer.Deliver(ctx, userID, r.Name, TriggerMessage); err != nil {
		s.log.Error(ctx, "failed to send reminder trigger", "err", err, "reminder_id", r.ID)
	}

	return &r, nil
}

// Update overwrites a reminder and replaces its pending job.
func (s *Service) Update(ctx context.Context, userID string, r models.Reminder) (*models.Reminder, error) {
	if err := validate(&r); err != nil {
		return nil, err
	}
	r.UserID = userID

	delay, err := s.Delay(r.Time, r.Timezone)
	if err != nil {
		return nil, err
	}

	var (
		j         *storage.Job
		cancelled int64
	)
	err = s.db.WithTx(ctx, func(q *storage.Queries) error {
		ok, err := q.ReplaceReminder(ctx, &r)
		if err != nil {
			return err
		}
		if !ok {
			return storage.ErrNotFound
		}

		if cancelled, err = s.scheduler.cancel(ctx, q, userID, r.ID); err != nil {
			return err
		}
		j, err = s.scheduler.enqueue(ctx, q, userID, r.ID, r.Name, JobMessage, delay)
		return err
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		s.log.Error(ctx, "failed to update reminder", "err", err, "reminder_id", r.ID)
		return nil, err
	}
	s.scheduler.cancelled(ctx, userID, r.ID, cancelled)
	s.scheduler.scheduled(ctx, j)

	s.log.Print(ctx, "reminder updated", "reminder_id", r.ID, "user_id", userID, "time", r.Time, "timezone", r.Timezone, "repeat", r.Repeat)
	return s.db.GetReminder(ctx, userID, r.ID)
}

// Delete removes a reminder and cancels its pending job.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	var cancelled int64
	err := s.db.WithTx(ctx, func(q *storage.Queries) error {
		ok, err := q.DeleteReminder(ctx, userID, id)
		if err != nil {
			return err
		}
		if !ok {
			return storage.ErrNotFound
		}

		cancelled, err = s.scheduler.cancel(ctx, q, userID, id)
		return err
	})
	if errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if err != nil {
		s.log.Error(ctx, "failed to delete reminder", "err", err, "reminder_id", id)
		return err
	}
	s.scheduler.cancelled(ctx, userID, id, cancelled)

	s.log.Print(ctx, "reminder deleted", "reminder_id", id, "user_id", userID)
	return nil
}

// Get returns one reminder.
func (s *Service) Get(ctx context.Context, userID, id string) (*models.Reminder, error) {
	return s.db.GetReminder(ctx, userID, id)
}

// List returns the reminders of a user in creation order.
func (s *Service) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	reminders, err := s.db.ListReminders(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "failed to list reminders", "err", err, "user_id", userID)
		return nil, err
	}
	return reminders, nil
}

// Delay returns how long until time t next occurs on the wall clock of the
// IANA zone tz. An empty tz means DefaultTimezone.
func (s *Service) Delay(t, tz string) (time.Duration, error) {
	loc, err := LoadTimezone(tz)
	if err != nil {
		return 0, err
	}
	return CalculateDelay(t, s.now().In(loc))
}
