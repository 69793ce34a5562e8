package storage

import (
	"context"
	"sort"

	"moneta/internal/models"

	"github.com/google/uuid"
)

const budgetColumns = "id, user_id, month, year, total, used"

func scanBudget(row interface{ Scan(...any) error }) (*models.Budget, error) {
	var b models.Budget
	if err := row.Scan(&b.ID, &b.UserID, &b.Month, &b.Year, &b.Total, &b.Used); err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// FindBudget returns the budget of a user for a month name and year.
// At most one budget per month is expected, the oldest row wins otherwise.
func (q *Queries) FindBudget(ctx context.Context, userID, month string, year int) (*models.Budget, error) {
	return scanBudget(q.queryRow(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE user_id = ? AND month = ? AND year = ? ORDER BY id LIMIT 1",
		userID, month, year,
	))
}

// GetBudget retrieves a budget of a user by ID.
func (q *Queries) GetBudget(ctx context.Context, userID, id string) (*models.Budget, error) {
	return scanBudget(q.queryRow(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE user_id = ? AND id = ?",
		userID, id,
	))
}

// InsertBudget stores a new budget, assigning an ID when empty.
func (q *Queries) InsertBudget(ctx context.Context, b *models.Budget) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	_, err := q.exec(ctx,
		"INSERT INTO budgets ("+budgetColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		b.ID, b.UserID, b.Month, b.Year, b.Total, b.Used,
	)
	return err
}

// ReplaceBudget overwrites every field of an existing budget.
func (q *Queries) ReplaceBudget(ctx context.Context, b *models.Budget) (bool, error) {
	res, err := q.exec(ctx,
		"UPDATE budgets SET month = ?, year = ?, total = ?, used = ? WHERE user_id = ? AND id = ?",
		b.Month, b.Year, b.Total, b.Used, b.UserID, b.ID,
	)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// SetBudgetUsed overwrites only the used amount of a budget.
func (q *Queries) SetBudgetUsed(ctx context.Context, id string, used float64) error {
	_, err := q.exec(ctx, "UPDATE budgets SET used = ? WHERE id = ?", used, id)
	return err
}

// ListBudgets returns the budgets of a user, most recent month first.
func (q *Queries) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	rows, err := q.query(ctx, "SELECT "+budgetColumns+" FROM budgets WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(budgets, func(i, j int) bool {
		if budgets[i].Year != budgets[j].Year {
			return budgets[i].Year > budgets[j].Year
		}
		mi, _ := models.ParseMonthName(budgets[i].Month)
		mj, _ := models.ParseMonthName(budgets[j].Month)
		return mi > mj
	})

	return budgets, nil
}

// DeleteBudget removes a budget of a user.
func (q *Queries) DeleteBudget(ctx context.Context, userID, id string) (bool, error) {
	res, err := q.exec(ctx, "DELETE FROM budgets WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
