package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a deferred job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobDone      JobStatus = "done"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// Job is a one-shot notification due at FireAt.
type Job struct {
	ID         string
	UserID     string
	ReminderID string
	Title      string
	Message    string
	FireAt     time.Time
	Status     JobStatus
	Attempts   int
	LastError  string
	CreatedAt  time.Time
}

const jobColumns = "id, user_id, reminder_id, title, message, fire_at, status, attempts, last_error, created_at"

func scanJob(row interface{ Scan(...any) error }) (*Job, error) {
	var (
		j                 Job
		status            string
		fireAt, createdAt int64
	)
	if err := row.Scan(&j.ID, &j.UserID, &j.ReminderID, &j.Title, &j.Message, &fireAt, &status, &j.Attempts,
		&j.LastError, &createdAt); err != nil {
		return nil, notFound(err)
	}
	j.Status = JobStatus(status)
	j.FireAt = fromMillis(fireAt)
	j.CreatedAt = fromMillis(createdAt)
	return &j, nil
}

// EnqueueJob stores a pending job, assigning an ID when empty.
func (q *Queries) EnqueueJob(ctx context.Context, j *Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	j.Status = JobPending

	_, err := q.exec(ctx,
		"INSERT INTO jobs ("+jobColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		j.ID, j.UserID, j.ReminderID, j.Title, j.Message, toMillis(j.FireAt), string(j.Status), j.Attempts,
		j.LastError, toMillis(j.CreatedAt),
	)
	return err
}

// getJob retrieves a job by ID.
func (q *Queries) getJob(ctx context.Context, id string) (*Job, error) {
	return scanJob(q.queryRow(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id))
}

// DueJobs returns up to limit pending jobs with FireAt <= now, earliest first.
func (q *Queries) DueJobs(ctx context.Context, now time.Time, limit int) ([]Job, error) {
	rows, err := q.query(ctx,
		"SELECT "+jobColumns+" FROM jobs WHERE status = ? AND fire_at <= ? ORDER BY fire_at, id LIMIT ?",
		string(JobPending), toMillis(now), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// ClaimJob moves a pending job to running. It reports false when another worker got it first
// or the job was cancelled.
func (q *Queries) ClaimJob(ctx context.Context, id string) (bool, error) {
	res, err := q.exec(ctx,
		"UPDATE jobs SET status = ?, attempts = attempts + 1 WHERE id = ? AND status = ?",
		string(JobRunning), id, string(JobPending),
	)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// MarkJobDone records a successful delivery.
func (q *Queries) MarkJobDone(ctx context.Context, id string) error {
	_, err := q.exec(ctx, "UPDATE jobs SET status = ?, last_error = '' WHERE id = ?", string(JobDone), id)
	return err
}

// MarkJobFailed records a failed delivery.
func (q *Queries) MarkJobFailed(ctx context.Context, id, reason string) error {
	_, err := q.exec(ctx, "UPDATE jobs SET status = ?, last_error = ? WHERE id = ?", string(JobFailed), reason, id)
	return err
}

// CancelJobs cancels the pending jobs of a reminder.
func (q *Queries) CancelJobs(ctx context.Context, userID, reminderID string) (int64, error) {
	res, err := q.exec(ctx,
		"UPDATE jobs SET status = ? WHERE user_id = ? AND reminder_id = ? AND status = ?",
		string(JobCancelled), userID, reminderID, string(JobPending),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ReleaseRunningJobs puts jobs left running by a previous process back to pending.
func (q *Queries) ReleaseRunningJobs(ctx context.Context) (int64, error) {
	res, err := q.exec(ctx, "UPDATE jobs SET status = ? WHERE status = ?", string(JobPending), string(JobRunning))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
