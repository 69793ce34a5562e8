// Package report builds the monthly category report.
package report

import (
	"sort"
	"time"

	"moneta/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one category with its spending statistics.
type CategoryTotal struct {
	Category   models.Category `json:"category"`
	Color      string          `json:"color"`
	Total      float64         `json:"total"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// MonthRef points at a neighbouring month for navigation.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Monthly is the report of one month.
type Monthly struct {
	Year           int              `json:"year"`
	Month          int              `json:"month"`
	MonthName      string           `json:"month_name"`
	Start          string           `json:"start"`
	End            string           `json:"end"`
	Total          float64          `json:"total"`
	Categories     []CategoryTotal  `json:"categories"`
	Expenses       []models.Expense `json:"expenses"`
	Budget         *models.Budget   `json:"budget,omitempty"`
	Utilisation    float64          `json:"utilisation"`
	Prev           MonthRef         `json:"prev"`
	Next           MonthRef         `json:"next"`
	IsCurrentMonth bool             `json:"is_current_month"`
}

// MonthRange returns the first and last day of a month in models.DateLayout.
func MonthRange(year int, month time.Month) (start, end string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(models.DateLayout), last.Format(models.DateLayout)
}

// CategoryTotals groups expense amounts per category, largest total first.
// Categories without expenses are left out.
func CategoryTotals(expenses []models.Expense) []CategoryTotal {
	sums := make(map[models.Category]decimal.Decimal)
	counts := make(map[models.Category]int)
	total := decimal.Zero
	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		sums[e.Category] = sums[e.Category].Add(amount)
		counts[e.Category]++
		total = total.Add(amount)
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for c, sum := range sums {
		percentage := 0.0
		if total.IsPositive() {
			percentage = sum.Div(total).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		totals = append(totals, CategoryTotal{
			Category:   c,
			Color:      c.Color(),
			Total:      sum.InexactFloat64(),
			Count:      counts[c],
			Percentage: percentage,
		})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Category < totals[j].Category
	})

	return totals
}

// Build assembles the report of a month. b may be nil when the month has no budget.
func Build(year int, month time.Month, expenses []models.Expense, b *models.Budget, now time.Time) Monthly {
	start, end := MonthRange(year, month)
	categories := CategoryTotals(expenses)

	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(decimal.NewFromFloat(c.Total))
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	r := Monthly{
		Year:           year,
		Month:          int(month),
		MonthName:      models.MonthName(month),
		Start:          start,
		End:            end,
		Total:          total.InexactFloat64(),
		Categories:     categories,
		Expenses:       expenses,
		Budget:         b,
		Prev:           MonthRef{Year: prev.Year(), Month: int(prev.Month())},
		Next:           MonthRef{Year: next.Year(), Month: int(next.Month())},
		IsCurrentMonth: year == now.Year() && month == now.Month(),
	}

	if b != nil && b.Total > 0 {
		r.Utilisation = decimal.NewFromFloat(b.Used).
			Div(decimal.NewFromFloat(b.Total)).
			Mul(decimal.NewFromInt(100)).
			Round(2).
			InexactFloat64()
	}

	return r
}
