package repository

import (
	"context"
	"errors"
	"fmt"

	"moneta/internal/models"
	"moneta/internal/storage"

	"github.com/vmkteam/embedlog"
)

// ErrInvalidBudget is returned for budgets with an unknown month or a negative limit.
var ErrInvalidBudget = errors.New("invalid budget")

// Budgets is the budget repository.
type Budgets struct {
	db  *storage.DB
	log embedlog.Logger
}

// NewBudgets creates a budget repository.
func NewBudgets(db *storage.DB, log embedlog.Logger) *Budgets {
	return &Budgets{db: db, log: log}
}

// List returns the budgets of a user, most recent month first.
func (r *Budgets) List(ctx context.Context, userID string) ([]models.Budget, error) {
	budgets, err := r.db.ListBudgets(ctx, userID)
	if err != nil {
		r.log.Error(ctx, "failed to list budgets", "err", err, "user_id", userID)
		return nil, err
	}
	return budgets, nil
}

// Get returns one budget.
func (r *Budgets) Get(ctx context.Context, userID, id string) (*models.Budget, error) {
	return r.db.GetBudget(ctx, userID, id)
}

// Find returns the budget of a month or nil when there is none.
func (r *Budgets) Find(ctx context.Context, userID, month string, year int) (*models.Budget, error) {
	b, err := r.db.FindBudget(ctx, userID, month, year)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return b, err
}

// SetLimit sets the total of a month's budget, creating the budget with nothing
// used when the month has none. The used amount of an existing budget is kept.
func (r *Budgets) SetLimit(ctx context.Context, userID, month string, year int, total float64) (*models.Budget, error) {
	if _, ok := models.ParseMonthName(month); !ok {
		return nil, fmt.Errorf("%w: unknown month %q", ErrInvalidBudget, month)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: negative total", ErrInvalidBudget)
	}

	var result *models.Budget
	err := r.db.WithTx(ctx, func(q *storage.Queries) error {
		b, err := q.FindBudget(ctx, userID, month, year)
		if errors.Is(err, storage.ErrNotFound) {
			result = &models.Budget{UserID: userID, Month: month, Year: year, Total: total}
			return q.InsertBudget(ctx, result)
		} else if err != nil {
			return err
		}

		b.Total = total
		result = b
		_, err = q.ReplaceBudget(ctx, b)
		return err
	})
	if err != nil {
		r.log.Error(ctx, "failed to set budget", "err", err, "user_id", userID, "month", month, "year", year)
		return nil, err
	}

	r.log.Print(ctx, "budget limit set", "budget_id", result.ID, "user_id", userID, "month", month, "year", year, "total", total)
	return result, nil
}

// Delete removes a budget. A missing budget returns storage.ErrNotFound.
func (r *Budgets) Delete(ctx context.Context, userID, id string) error {
	ok, err := r.db.DeleteBudget(ctx, userID, id)
	if err != nil {
		r.log.Error(ctx, "failed to delete budget", "err", err, "budget_id", id, "user_id", userID)
		return err
	}
	if !ok {
		return storage.ErrNotFound
	}

	r.log.Print(ctx, "budget deleted", "budget_id", id, "user_id", userID)
	return nil
}
