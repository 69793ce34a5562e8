package reminder

import (
	"context"
	"fmt"
	"time"

	"moneta/internal/metrics"
	"moneta/internal/storage"

	"github.com/vmkteam/embedlog"
)

// Deliverer sends a notification to a user.
type Deliverer interface {
	Deliver(ctx context.Context, userID, title, body string) error
}

// Scheduler runs one-shot notification jobs once they are due. Jobs live in
// storage, so pending ones survive a restart.
type Scheduler struct {
	db        *storage.DB
	deliverer Deliverer
	log       embedlog.Logger
	interval  time.Duration
	batch     int
	now       func() time.Time
}

// NewScheduler creates a Scheduler polling every interval.
func NewScheduler(db *storage.DB, d Deliverer, log embedlog.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Scheduler{
		db:        db,
		deliverer: d,
		log:       log,
		interval:  interval,
		batch:     50,
		now:       time.Now,
	}
}

// enqueue stores a job firing delay from now through q, which may be a
// transaction.
func (s *Scheduler) enqueue(ctx context.Context, q *storage.Queries, userID, reminderID, title, message string, delay time.Duration) (*storage.Job, error) {
	j := &storage.Job{
		UserID:     userID,
		ReminderID: reminderID,
		Title:      title,
		Message:    message,
		FireAt:     s.now().Add(delay),
	}
	if err := q.EnqueueJob(ctx, j); err != nil {
		return nil, fmt.Errorf("enqueue job: %w", err)
	}
	return j, nil
}

// cancel drops the pending jobs of a reminder.
func (s *Scheduler) cancel(ctx context.Context, q *storage.Queries, userID, reminderID string) (int64, error) {
	n, err := q.CancelJobs(ctx, userID, reminderID)
	if err != nil {
		return 0, fmt.Errorf("cancel jobs: %w", err)
	}
	return n, nil
}

// scheduled records a job once it is committed.
func (s *Scheduler) scheduled(ctx context.Context, j *storage.Job) {
	metrics.RemindersScheduled.Inc()
	s.log.Print(ctx, "job scheduled", "job_id", j.ID, "user_id", j.UserID, "reminder_id", j.ReminderID, "fire_at", j.FireAt)
}

func (s *Scheduler) cancelled(ctx context.Context, userID, reminderID string, n int64) {
	if n > 0 {
		s.log.Print(ctx, "jobs cancelled", "user_id", userID, "reminder_id", reminderID, "count", n)
	}
}

// Run releases jobs a previous process left running, then delivers due jobs every
// interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	n, err := s.db.ReleaseRunningJobs(ctx)
	if err != nil {
		return fmt.Errorf("release running jobs: %w", err)
	}
	if n > 0 {
		s.log.Print(ctx, "released interrupted jobs", "count", n)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.log.Error(ctx, "scheduler pass failed", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce delivers every job due now and returns how many it processed.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	processed := 0
	for {
		jobs, err := s.db.DueJobs(ctx, s.now(), s.batch)
		if err != nil {
			return processed, fmt.Errorf("due jobs: %w", err)
		}
		if len(jobs) == 0 {
			return processed, nil
		}

		for _, j := range jobs {
			ok, err := s.db.ClaimJob(ctx, j.ID)
			if err != nil {
				return processed, fmt.Errorf("claim job %s: %w", j.ID, err)
			}
			if !ok {
				continue
			}

			s.deliver(ctx, j)
			processed++
		}
	}
}

// deliver runs one claimed job. Failures are recorded and not retried.
func (s *Scheduler) deliver(ctx context.Context, j storage.Job) {
	err := s.deliverer.Deliver(ctx, j.UserID, j.Title, j.Message)
	metrics.JobsProcessed.WithLabelValues(metrics.Result(err)).Inc()

	if err != nil {
		s.log.Error(ctx, "job delivery failed", "err", err, "job_id", j.ID, "user_id", j.UserID)
		if err := s.db.MarkJobFailed(ctx, j.ID, err.Error()); err != nil {
			s.log.Error(ctx, "failed to mark job failed", "err", err, "job_id", j.ID)
		}
		return
	}

	if err := s.db.MarkJobDone(ctx, j.ID); err != nil {
		s.log.Error(ctx, "failed to mark job done", "err", err, "job_id", j.ID)
		return
	}
	s.log.Print(ctx, "job delivered", "job_id", j.ID, "user_id", j.UserID, "reminder_id", j.ReminderID)
}
