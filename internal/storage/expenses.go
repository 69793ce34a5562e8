package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"moneta/internal/models"
)

const expenseColumns = "id, user_id, description, amount, date, category, attachments, created_at"

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	var (
		e                          models.Expense
		day, category, attachments string
		createdAt                  int64
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &day, &category, &attachments, &createdAt); err != nil {
		return nil, notFound(err)
	}

	date, err := time.Parse(models.DateLayout, day)
	if err != nil {
		return nil, fmt.Errorf("expense %s has invalid date %q: %w", e.ID, day, err)
	}
	e.Date = date
	e.Category = models.Category(category)
	e.CreatedAt = fromMillis(createdAt)

	if attachments != "" {
		if err := json.Unmarshal([]byte(attachments), &e.Attachments); err != nil {
			return nil, fmt.Errorf("expense %s has invalid attachments: %w", e.ID, err)
		}
	}

	return &e, nil
}

func scanExpenses(rows *sql.Rows) ([]models.Expense, error) {
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}

	return expenses, rows.Err()
}

func encodeAttachments(a []string) (string, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

// InsertExpense stores a new expense. ID and UserID must be set.
func (q *Queries) InsertExpense(ctx context.Context, e *models.Expense) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	attachments, err := encodeAttachments(e.Attachments)
	if err != nil {
		return err
	}

	_, err = q.exec(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.UserID, e.Description, e.Amount, e.Day(), string(e.Category), attachments, toMillis(e.CreatedAt),
	)
	return err
}

// GetExpense retrieves a single expense of a user by ID.
func (q *Queries) GetExpense(ctx context.Context, userID, id string) (*models.Expense, error) {
	return scanExpense(q.queryRow(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? AND id = ?",
		userID, id,
	))
}

// ReplaceExpense overwrites every field of an existing expense.
func (q *Queries) ReplaceExpense(ctx context.Context, e *models.Expense) (bool, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	attachments, err := encodeAttachments(e.Attachments)
	if err != nil {
		return false, err
	}

	res, err := q.exec(ctx,
		"UPDATE expenses SET description = ?, amount = ?, date = ?, category = ?, attachments = ?, created_at = ? WHERE user_id = ? AND id = ?",
		e.Description, e.Amount, e.Day(), string(e.Category), attachments, toMillis(e.CreatedAt), e.UserID, e.ID,
	)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// DeleteExpense removes an expense of a user.
func (q *Queries) DeleteExpense(ctx context.Context, userID, id string) (bool, error) {
	res, err := q.exec(ctx, "DELETE FROM expenses WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// ExpensesByDate retrieves the expenses of a user on one day, newest first.
func (q *Queries) ExpensesByDate(ctx context.Context, userID, day string) ([]models.Expense, error) {
	rows, err := q.query(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? AND date = ? ORDER BY created_at DESC",
		userID, day,
	)
	if err != nil {
		return nil, err
	}
	return scanExpenses(rows)
}

// ExpensesBetween retrieves the expenses of a user with start <= date <= end, ordered by date descending.
func (q *Queries) ExpensesBetween(ctx context.Context, userID, start, end string) ([]models.Expense, error) {
	rows, err := q.query(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date DESC, created_at DESC",
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	return scanExpenses(rows)
}
