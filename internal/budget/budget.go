// Package budget keeps the used amount of monthly budgets in step with expense mutations.
package budget

import (
	"context"
	"errors"
	"fmt"

	"moneta/internal/metrics"
	"moneta/internal/models"
	"moneta/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/vmkteam/embedlog"
)

// Store is the subset of storage the policy reads and writes.
type Store interface {
	FindBudget(ctx context.Context, userID, month string, year int) (*models.Budget, error)
	InsertBudget(ctx context.Context, b *models.Budget) error
	SetBudgetUsed(ctx context.Context, id string, used float64) error
}

// Policy applies incremental used-amount updates. Callers run it inside the
// transaction that writes the expense.
type Policy struct {
	log embedlog.Logger
}

// NewPolicy creates a Policy.
func NewPolicy(log embedlog.Logger) *Policy {
	return &Policy{log: log}
}

// OnCreate adds the amount of e to the budget of its month, creating the budget
// with the default limit when there is none.
func (p *Policy) OnCreate(ctx context.Context, s Store, userID string, e models.Expense) error {
	return p.add(ctx, s, userID, e)
}

// OnUpdate subtracts the previous amount and adds the updated one. When the
// expense moved to another month both budgets are adjusted.
func (p *Policy) OnUpdate(ctx context.Context, s Store, userID string, previous, updated models.Expense) error {
	if sameMonth(previous, updated) {
		b, err := p.find(ctx, s, userID, updated)
		if err != nil || b == nil {
			return err
		}

		used := decimal.NewFromFloat(b.Used).
			Sub(decimal.NewFromFloat(previous.Amount)).
			Add(decimal.NewFromFloat(updated.Amount))
		return p.set(ctx, s, b, used, "update")
	}

	if err := p.subtract(ctx, s, userID, previous); err != nil {
		return err
	}
	return p.add(ctx, s, userID, updated)
}

// OnDelete subtracts the amount of e from the budget of its month, never going below zero.
func (p *Policy) OnDelete(ctx context.Context, s Store, userID string, e models.Expense) error {
	return p.subtract(ctx, s, userID, e)
}

func (p *Policy) add(ctx context.Context, s Store, userID string, e models.Expense) error {
	b, err := p.find(ctx, s, userID, e)
	if err != nil {
		return err
	}

	if b == nil {
		b = &models.Budget{
			UserID: userID,
			Month:  models.MonthName(e.Date.Month()),
			Year:   e.Date.Year(),
			Total:  models.DefaultBudgetTotal,
			Used:   e.Amount,
		}
		if err := s.InsertBudget(ctx, b); err != nil {
			return fmt.Errorf("create budget for %s %d: %w", b.Month, b.Year, err)
		}
		metrics.BudgetAdjustments.WithLabelValues("seed").Inc()
		p.log.Print(ctx, "budget created", "budget_id", b.ID, "user_id", userID, "month", b.Month, "year", b.Year, "used", b.Used)
		return nil
	}

	used := decimal.NewFromFloat(b.Used).Add(decimal.NewFromFloat(e.Amount))
	return p.set(ctx, s, b, used, "add")
}

func (p *Policy) subtract(ctx context.Context, s Store, userID string, e models.Expense) error {
	b, err := p.find(ctx, s, userID, e)
	if err != nil || b == nil {
		return err
	}

	used := decimal.NewFromFloat(b.Used).Sub(decimal.NewFromFloat(e.Amount))
	if used.IsNegative() {
		used = decimal.Zero
	}
	return p.set(ctx, s, b, used, "subtract")
}

// find returns nil without error when the month has no budget.
func (p *Policy) find(ctx context.Context, s Store, userID string, e models.Expense) (*models.Budget, error) {
	month, year := models.MonthName(e.Date.Month()), e.Date.Year()

	b, err := s.FindBudget(ctx, userID, month, year)
	if errors.Is(err, storage.ErrNotFound) {
		p.log.Print(ctx, "no budget for month", "user_id", userID, "month", month, "year", year)
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("find budget for %s %d: %w", month, year, err)
	}

	return b, nil
}

func (p *Policy) set(ctx context.Context, s Store, b *models.Budget, used decimal.Decimal, kind string) error {
	v := used.InexactFloat64()
	if err := s.SetBudgetUsed(ctx, b.ID, v); err != nil {
		return fmt.Errorf("update budget %s: %w", b.ID, err)
	}

	metrics.BudgetAdjustments.WithLabelValues(kind).Inc()
	p.log.Print(ctx, "budget adjusted", "budget_id", b.ID, "kind", kind, "from", b.Used, "to", v)
	b.Used = v
	return nil
}

func sameMonth(a, b models.Expense) bool {
	return a.Date.Year() == b.Date.Year() && a.Date.Month() == b.Date.Month()
}
