package handlers

import (
	"net/http"

	"moneta/internal/models"
	"moneta/internal/report"

	"github.com/gin-gonic/gin"
)

// MonthlyReport returns the spending of a month by category against its budget.
//
//	@Summary	Monthly report
//	@Tags		reports
//	@Security	BearerAuth
//	@Produce	json
//	@Param		year	query		int		false	"Year"
//	@Param		month	query		string	false	"Month number or name"
//	@Success	200		{object}	report.Monthly
//	@Router		/api/reports/monthly [get]
func (h *Handlers) MonthlyReport(c *gin.Context) {
	year, month, err := h.queryMonth(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	userID := GetUser(c).ID

	expenses, err := h.expenses.ListMonth(ctx, userID, year, month)
	if err != nil {
		h.fail(c, err)
		return
	}
	b, err := h.budgets.Find(ctx, userID, models.MonthName(month), year)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report.Build(year, month, expenses, b, h.now()))
}

// ListNotifications returns the delivered notifications of the user.
//
//	@Summary	List notifications
//	@Tags		notifications
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	models.Notification
//	@Router		/api/notifications [get]
func (h *Handlers) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.notifications.List(c.Request.Context(), GetUser(c).ID))
}

// News returns finance headlines.
//
//	@Summary	Finance news
//	@Tags		news
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		models.Article
//	@Failure	503	{object}	map[string]string
//	@Router		/api/news [get]
func (h *Handlers) News(c *gin.Context) {
	articles, err := h.news.Finance(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}
