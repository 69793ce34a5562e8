// Package repository scopes storage calls to a user, keeps budgets in step and
// pushes live result sets to listeners.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moneta/internal/budget"
	"moneta/internal/cache"
	"moneta/internal/metrics"
	"moneta/internal/models"
	"moneta/internal/report"
	"moneta/internal/storage"

	"github.com/google/uuid"
	"github.com/vmkteam/embedlog"
)

// Expenses is the expense repository.
type Expenses struct {
	db     *storage.DB
	cache  *cache.Cache
	policy *budget.Policy
	broker *Broker
	log    embedlog.Logger
}

// NewExpenses creates an expense repository. c may be nil to disable the local mirror.
func NewExpenses(db *storage.DB, c *cache.Cache, policy *budget.Policy, broker *Broker, log embedlog.Logger) *Expenses {
	return &Expenses{db: db, cache: c, policy: policy, broker: broker, log: log}
}

// Add stores a new expense under a fresh ID and adjusts the budget of its month.
func (r *Expenses) Add(ctx context.Context, userID string, e models.Expense) (*models.Expense, error) {
	e.ID = uuid.NewString()
	e.UserID = userID
	e.CreatedAt = time.Now()

	err := r.db.WithTx(ctx, func(q *storage.Queries) error {
		if err := q.InsertExpense(ctx, &e); err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
		return r.policy.OnCreate(ctx, q, userID, e)
	})
	if err != nil {
		r.log.Error(ctx, "failed to add expense", "err", err, "user_id", userID)
		return nil, err
	}

	metrics.ExpensesWritten.WithLabelValues("create").Inc()
	r.log.Print(ctx, "expense added", "expense_id", e.ID, "user_id", userID, "amount", e.Amount, "date", e.Day())
	r.broker.Publish(userID)

	return &e, nil
}

// Update overwrites an expense and moves its amount between budgets. A missing
// expense returns storage.ErrNotFound.
func (r *Expenses) Update(ctx context.Context, userID string, e models.Expense) (*models.Expense, error) {
	e.UserID = userID

	err := r.db.WithTx(ctx, func(q *storage.Queries) error {
		previous, err := q.GetExpense(ctx, userID, e.ID)
		if err != nil {
			return err
		}
		e.CreatedAt = previous.CreatedAt

		if _, err := q.ReplaceExpense(ctx, &e); err != nil {
			return fmt.Errorf("replace expense: %w", err)
		}
		return r.policy.OnUpdate(ctx, q, userID, *previous, e)
	})
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error(ctx, "failed to update expense", "err", err, "expense_id", e.ID, "user_id", userID)
		}
		return nil, err
	}

	metrics.ExpensesWritten.WithLabelValues("update").Inc()
	r.log.Print(ctx, "expense updated", "expense_id", e.ID, "user_id", userID, "amount", e.Amount, "date", e.Day())
	r.broker.Publish(userID)

	return &e, nil
}

// Delete removes an expense and subtracts it from its budget. Deleting a missing
// expense is a no-op.
func (r *Expenses) Delete(ctx context.Context, userID, id string) error {
	var found bool
	err := r.db.WithTx(ctx, func(q *storage.Queries) error {
		e, err := q.GetExpense(ctx, userID, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		found = true

		if err := r.policy.OnDelete(ctx, q, userID, *e); err != nil {
			return err
		}
		_, err = q.DeleteExpense(ctx, userID, id)
		return err
	})
	if err != nil {
		r.log.Error(ctx, "failed to delete expense", "err", err, "expense_id", id, "user_id", userID)
		return err
	}

	if !found {
		r.log.Print(ctx, "expense not found", "expense_id", id, "user_id", userID)
		return nil
	}

	if r.cache != nil {
		if err := r.cache.DeleteExpense(ctx, id); err != nil {
			r.log.Error(ctx, "failed to evict cached expense", "err", err, "expense_id", id)
		}
	}

	metrics.ExpensesWritten.WithLabelValues("delete").Inc()
	r.log.Print(ctx, "expense deleted", "expense_id", id, "user_id", userID)
	r.broker.Publish(userID)

	return nil
}

// Forget drops the cached expenses of a user. Later reads fill the cache again.
func (r *Expenses) Forget(ctx context.Context, userID string) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Clear(ctx, userID)
}

// Get returns one expense.
func (r *Expenses) Get(ctx context.Context, userID, id string) (*models.Expense, error) {
	return r.db.GetExpense(ctx, userID, id)
}

// ListDate returns the expenses of a day, newest first.
func (r *Expenses) ListDate(ctx context.Context, userID string, day time.Time) ([]models.Expense, error) {
	return r.db.ExpensesByDate(ctx, userID, day.Format(models.DateLayout))
}

// ListMonth returns the expenses of a month, latest date first.
func (r *Expenses) ListMonth(ctx context.Context, userID string, year int, month time.Month) ([]models.Expense, error) {
	start, end := report.MonthRange(year, month)
	return r.db.ExpensesBetween(ctx, userID, start, end)
}

// WatchDate streams the expenses of a day. See watch.
func (r *Expenses) WatchDate(ctx context.Context, userID string, day time.Time) <-chan []models.Expense {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	return r.watch(ctx, userID,
		func(ctx context.Context) ([]models.Expense, error) {
			return r.cache.ExpensesByDate(ctx, userID, day)
		},
		func(ctx context.Context) ([]models.Expense, error) {
			return r.ListDate(ctx, userID, day)
		},
	)
}

// WatchMonth streams the expenses of a month. See watch.
func (r *Expenses) WatchMonth(ctx context.Context, userID string, year int, month time.Month) <-chan []models.Expense {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return r.watch(ctx, userID,
		func(ctx context.Context) ([]models.Expense, error) {
			return r.cache.ExpensesByMonth(ctx, userID, start, end)
		},
		func(ctx context.Context) ([]models.Expense, error) {
			return r.ListMonth(ctx, userID, year, month)
		},
	)
}

type loader func(ctx context.Context) ([]models.Expense, error)

// watch emits the cached rows when there are any, then the remote rows, then a
// fresh remote result set after every change of the user's expenses. Remote rows
// are mirrored into the cache. The channel closes when ctx is done or a remote
// query fails.
func (r *Expenses) watch(ctx context.Context, userID string, local, remote loader) <-chan []models.Expense {
	out := make(chan []models.Expense, 1)
	changes, unsubscribe := r.broker.Subscribe(userID)

	go func() {
		defer close(out)
		defer unsubscribe()

		send := func(expenses []models.Expense) bool {
			select {
			case out <- expenses:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if r.cache != nil {
			cached, err := local(ctx)
			if err != nil {
				r.log.Error(ctx, "failed to read cached expenses", "err", err, "user_id", userID)
			} else if len(cached) > 0 && !send(cached) {
				return
			}
		}

		for {
			expenses, err := remote(ctx)
			if err != nil {
				if ctx.Err() == nil {
					r.log.Error(ctx, "expense listener query failed", "err", err, "user_id", userID)
				}
				return
			}
			if !send(expenses) {
				return
			}

			if r.cache != nil {
				if err := r.cache.PutExpenses(ctx, expenses); err != nil {
					r.log.Error(ctx, "failed to mirror expenses", "err", err, "user_id", userID)
				}
			}

			select {
			case <-changes:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
