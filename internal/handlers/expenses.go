package handlers

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"moneta/internal/models"

	"github.com/gin-gonic/gin"
)

type expenseRequest struct {
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Date        string   `json:"date" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Attachments []string `json:"attachments"`
}

func (r expenseRequest) expense() (models.Expense, error) {
	date, err := time.Parse(models.DateLayout, r.Date)
	if err != nil {
		return models.Expense{}, fmt.Errorf("%w: date must be yyyy-MM-dd", errBadRequest)
	}
	category, err := models.ParseCategory(r.Category)
	if err != nil {
		return models.Expense{}, err
	}
	if r.Amount < 0 {
		return models.Expense{}, fmt.Errorf("%w: amount must not be negative", errBadRequest)
	}

	return models.Expense{
		Description: strings.TrimSpace(r.Description),
		Amount:      r.Amount,
		Date:        date,
		Category:    category,
		Attachments: r.Attachments,
	}, nil
}

// ExpenseGroup is the expenses of one day in a month listing.
type ExpenseGroup struct {
	Title string           `json:"title"`
	Date  string           `json:"date"`
	Total float64          `json:"total"`
	Items []models.Expense `json:"items"`
}

// MonthListing is the response of the month listing.
type MonthListing struct {
	Year   int            `json:"year"`
	Month  string         `json:"month"`
	Total  float64        `json:"total"`
	Groups []ExpenseGroup `json:"groups"`
}

// groupByDay groups expenses by date, latest day first.
func groupByDay(expenses []models.Expense, now time.Time) (float64, []ExpenseGroup) {
	groupsMap := make(map[string]*ExpenseGroup)
	var total float64

	for _, e := range expenses {
		day := e.Day()
		if _, ok := groupsMap[day]; !ok {
			groupsMap[day] = &ExpenseGroup{Date: day, Title: formatGroupTitle(e.Date, now)}
		}
		group := groupsMap[day]
		group.Total += e.Amount
		group.Items = append(group.Items, e)
		total += e.Amount
	}

	groups := make([]ExpenseGroup, 0, len(groupsMap))
	for _, g := range groupsMap {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date > groups[j].Date })

	return total, groups
}

func formatGroupTitle(date, now time.Time) string {
	day := date.Format(models.DateLayout)
	if day == now.Format(models.DateLayout) {
		return "TODAY"
	}
	if day == now.AddDate(0, 0, -1).Format(models.DateLayout) {
		return "YESTERDAY"
	}
	return strings.ToUpper(date.Format("Mon, 02 Jan '06"))
}

// queryDay reads the date query parameter, today when absent.
func (h *Handlers) queryDay(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		now := h.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be yyyy-MM-dd", errBadRequest)
	}
	return day, nil
}

// queryMonth reads the year and month query parameters, the current month when
// absent. month is a number or an English month name.
func (h *Handlers) queryMonth(c *gin.Context) (int, time.Month, error) {
	now := h.now()
	year, month := now.Year(), now.Month()

	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			return 0, 0, fmt.Errorf("%w: invalid year %q", errBadRequest, raw)
		}
		year = y
	}
	if raw := c.Query("month"); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil && m >= 1 && m <= 12 {
			month = time.Month(m)
		} else if m, ok := models.ParseMonthName(raw); ok {
			month = m
		} else {
			return 0, 0, fmt.Errorf("%w: invalid month %q", errBadRequest, raw)
		}
	}

	return year, month, nil
}

// ListExpenses returns the expenses of one day.
//
//	@Summary	Expenses of a day
//	@Tags		expenses
//	@Security	BearerAuth
//	@Produce	json
//	@Param		date	query		string	false	"yyyy-MM-dd, defaults to today"
//	@Success	200		{array}		models.Expense
//	@Router		/api/expenses [get]
func (h *Handlers) ListExpenses(c *gin.Context) {
	day, err := h.queryDay(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	expenses, err := h.expenses.ListDate(c.Request.Context(), GetUser(c).ID, day)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// ListMonthExpenses returns the expenses of a month grouped by day.
//
//	@Summary	Expenses of a month
//	@Tags		expenses
//	@Security	BearerAuth
//	@Produce	json
//	@Param		year	query		int		false	"Year"
//	@Param		month	query		string	false	"Month number or name"
//	@Success	200		{object}	MonthListing
//	@Router		/api/expenses/month [get]
func (h *Handlers) ListMonthExpenses(c *gin.Context) {
	year, month, err := h.queryMonth(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	expenses, err := h.expenses.ListMonth(c.Request.Context(), GetUser(c).ID, year, month)
	if err != nil {
		h.fail(c, err)
		return
	}

	total, groups := groupByDay(expenses, h.now())
	c.JSON(http.StatusOK, MonthListing{Year: year, Month: models.MonthName(month), Total: total, Groups: groups})
}

// StreamExpenses pushes the expenses of a day as server-sent events on every change.
//
//	@Summary	Live expenses of a day
//	@Tags		expenses
//	@Security	BearerAuth
//	@Produce	text/event-stream
//	@Param		date	query	string	false	"yyyy-MM-dd, defaults to today"
//	@Router		/api/expenses/stream [get]
func (h *Handlers) StreamExpenses(c *gin.Context) {
	day, err := h.queryDay(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := h.streamContext(c)
	defer cancel()
	h.stream(c, h.expenses.WatchDate(ctx, GetUser(c).ID, day))
}

// StreamMonthExpenses pushes the expenses of a month as server-sent events on every change.
//
//	@Summary	Live expenses of a month
//	@Tags		expenses
//	@Security	BearerAuth
//	@Produce	text/event-stream
//	@Param		year	query	int		false	"Year"
//	@Param		month	query	string	false	"Month number or name"
//	@Router		/api/expenses/month/stream [get]
func (h *Handlers) StreamMonthExpenses(c *gin.Context) {
	year, month, err := h.queryMonth(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := h.streamContext(c)
	defer cancel()
	h.stream(c, h.expenses.WatchMonth(ctx, GetUser(c).ID, year, month))
}

func (h *Handlers) stream(c *gin.Context, updates <-chan []models.Expense) {
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		expenses, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("expenses", expenses)
		return true
	})
}

// GetExpense returns one expense.
//
//	@Summary	Get expense
//	@Tags		expenses
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Expense ID"
//	@Success	200	{object}	models.Expense
//	@Failure	404	{object}	map[string]string
//	@Router		/api/expenses/{id} [get]
func (h *Handlers) GetExpense(c *gin.Context) {
	e, err := h.expenses.Get(c.Request.Context(), GetUser(c).ID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// CreateExpense records an expense and charges it to its month's budget.
//
//	@Summary	Create expense
//	@Tags		expenses
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		expenseRequest	true	"Expense"
//	@Success	201		{object}	models.Expense
//	@Failure	400		{object}	map[string]string
//	@Router		/api/expenses [post]
func (h *Handlers) CreateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and category are required"})
		return
	}
	e, err := req.expense()
	if err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.expenses.Add(c.Request.Context(), GetUser(c).ID, e)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateExpense overwrites an expense.
//
//	@Summary	Update expense
//	@Tags		expenses
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Expense ID"
//	@Param		body	body		expenseRequest	true	"Expense"
//	@Success	200		{object}	models.Expense
//	@Failure	404		{object}	map[string]string
//	@Router		/api/expenses/{id} [put]
func (h *Handlers) UpdateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and category are required"})
		return
	}
	e, err := req.expense()
	if err != nil {
		h.fail(c, err)
		return
	}
	e.ID = c.Param("id")

	updated, err := h.expenses.Update(c.Request.Context(), GetUser(c).ID, e)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteExpense removes an expense. Deleting a missing expense succeeds.
//
//	@Summary	Delete expense
//	@Tags		expenses
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Expense ID"
//	@Success	204
//	@Router		/api/expenses/{id} [delete]
func (h *Handlers) DeleteExpense(c *gin.Context) {
	if err := h.expenses.Delete(c.Request.Context(), GetUser(c).ID, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
