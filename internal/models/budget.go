package models

import "time"

// DefaultBudgetTotal is the limit given to budgets created implicitly by an expense.
const DefaultBudgetTotal = 1000.0

// Budget is the monthly spending limit of a user. Used is a running sum kept up to
// date on every expense mutation, it is never recomputed from the expenses.
type Budget struct {
	ID     string  `json:"id"`
	UserID string  `json:"-"`
	Month  string  `json:"month"`
	Year   int     `json:"year"`
	Total  float64 `json:"total"`
	Used   float64 `json:"used"`
}

// Remaining returns how much of the limit is left, negative when overspent.
func (b Budget) Remaining() float64 {
	return b.Total - b.Used
}

// MonthName returns the English name of m, the key budgets are stored under.
func MonthName(m time.Month) string {
	return m.String()
}

// ParseMonthName is the inverse of MonthName.
func ParseMonthName(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}
