// Package cache is the local read-through mirror of remote expenses.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"moneta/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// Cache wraps the local SQLite expense table.
type Cache struct {
	conn *sql.DB
}

// Open opens the cache database at path and creates its table.
func Open(path string) (*Cache, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	c := &Cache{conn: conn}
	if err := c.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return c, nil
}

func (c *Cache) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			description TEXT NOT NULL,
			amount REAL NOT NULL,
			date INTEGER NOT NULL,
			category TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS expenses_user_date ON expenses (user_id, date)`,
	}
	for _, m := range migrations {
		if _, err := c.conn.Exec(m); err != nil {
			return fmt.Errorf("cache migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.conn.Close()
}

// PutExpenses inserts or replaces expenses by ID.
func (c *Cache) PutExpenses(ctx context.Context, expenses []models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR REPLACE INTO expenses (id, user_id, description, amount, date, category) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range expenses {
		if _, err := stmt.ExecContext(ctx, e.ID, e.UserID, e.Description, e.Amount, e.Date.UnixMilli(), string(e.Category)); err != nil {
			return fmt.Errorf("cache expense %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// ExpensesByDate returns the cached expenses of a user on the calendar day containing day.
func (c *Cache) ExpensesByDate(ctx context.Context, userID string, day time.Time) ([]models.Expense, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return c.between(ctx, userID, start, start.AddDate(0, 0, 1).Add(-time.Millisecond))
}

// ExpensesByMonth returns the cached expenses of a user with start <= date <= end.
func (c *Cache) ExpensesByMonth(ctx context.Context, userID string, start, end time.Time) ([]models.Expense, error) {
	return c.between(ctx, userID, start, end)
}

func (c *Cache) between(ctx context.Context, userID string, start, end time.Time) ([]models.Expense, error) {
	rows, err := c.conn.QueryContext(ctx,
		"SELECT id, user_id, description, amount, date, category FROM expenses WHERE user_id = ? AND date BETWEEN ? AND ? ORDER BY date DESC, id",
		userID, start.UnixMilli(), end.UnixMilli(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var (
			e        models.Expense
			date     int64
			category string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &date, &category); err != nil {
			return nil, err
		}
		e.Date = time.UnixMilli(date).UTC()
		e.Category = models.Category(category)
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// DeleteExpense removes one cached expense.
func (c *Cache) DeleteExpense(ctx context.Context, id string) error {
	_, err := c.conn.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	return err
}

// Clear removes every cached expense of a user.
func (c *Cache) Clear(ctx context.Context, userID string) error {
	_, err := c.conn.ExecContext(ctx, "DELETE FROM expenses WHERE user_id = ?", userID)
	return err
}
