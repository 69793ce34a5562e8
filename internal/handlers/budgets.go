package handlers

import (
	"net/http"
	"strings"

	"moneta/internal/models"

	"github.com/gin-gonic/gin"
)

type budgetRequest struct {
	Month string  `json:"month" binding:"required"`
	Year  int     `json:"year" binding:"required"`
	Total float64 `json:"total"`
}

// ListBudgets returns every budget of the user.
//
//	@Summary	List budgets
//	@Tags		budgets
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	models.Budget
//	@Router		/api/budgets [get]
func (h *Handlers) ListBudgets(c *gin.Context) {
	budgets, err := h.budgets.List(c.Request.Context(), GetUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	c.JSON(http.StatusOK, budgets)
}

// SetBudget sets the limit of a month, creating its budget when missing.
//
//	@Summary	Set monthly limit
//	@Tags		budgets
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		budgetRequest	true	"Month, year and total"
//	@Success	200		{object}	models.Budget
//	@Failure	400		{object}	map[string]string
//	@Router		/api/budgets [put]
func (h *Handlers) SetBudget(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month and year are required"})
		return
	}

	b, err := h.budgets.SetLimit(c.Request.Context(), GetUser(c).ID, strings.TrimSpace(req.Month), req.Year, req.Total)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBudget returns one budget.
//
//	@Summary	Get budget
//	@Tags		budgets
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Budget ID"
//	@Success	200	{object}	models.Budget
//	@Failure	404	{object}	map[string]string
//	@Router		/api/budgets/{id} [get]
func (h *Handlers) GetBudget(c *gin.Context) {
	b, err := h.budgets.Get(c.Request.Context(), GetUser(c).ID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBudget removes a budget.
//
//	@Summary	Delete budget
//	@Tags		budgets
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Budget ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/budgets/{id} [delete]
func (h *Handlers) DeleteBudget(c *gin.Context) {
	if err := h.budgets.Delete(c.Request.Context(), GetUser(c).ID, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
