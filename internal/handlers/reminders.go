package handlers

import (
	"net/http"
	"time"

	"moneta/internal/models"
	"moneta/internal/reminder"

	"github.com/gin-gonic/gin"
)

type reminderRequest struct {
	Name     string `json:"name"`
	Time     string `json:"time" binding:"required"`
	Repeat   string `json:"repeat"`
	Timezone string `json:"timezone"`
}

func (r reminderRequest) reminder() models.Reminder {
	return models.Reminder{Name: r.Name, Time: r.Time, Repeat: models.Repeat(r.Repeat), Timezone: r.Timezone}
}

type delayResponse struct {
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
	DelayMS  int64  `json:"delay_ms"`
	FireAt   string `json:"fire_at"`
}

// ListReminders returns the reminders of the user.
//
//	@Summary	List reminders
//	@Tags		reminders
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	models.Reminder
//	@Router		/api/reminders [get]
func (h *Handlers) ListReminders(c *gin.Context) {
	reminders, err := h.reminders.List(c.Request.Context(), GetUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	c.JSON(http.StatusOK, reminders)
}

// CreateReminder stores a reminder and schedules its notification.
//
//	@Summary	Create reminder
//	@Tags		reminders
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		reminderRequest	true	"Reminder, time as H:MM AM|PM in an IANA timezone"
//	@Success	201		{object}	models.Reminder
//	@Failure	400		{object}	map[string]string
//	@Router		/api/reminders [post]
func (h *Handlers) CreateReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time is required"})
		return
	}

	r, err := h.reminders.Create(c.Request.Context(), GetUser(c).ID, req.reminder())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GetReminder returns one reminder.
//
//	@Summary	Get reminder
//	@Tags		reminders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Reminder ID"
//	@Success	200	{object}	models.Reminder
//	@Failure	404	{object}	map[string]string
//	@Router		/api/reminders/{id} [get]
func (h *Handlers) GetReminder(c *gin.Context) {
	r, err := h.reminders.Get(c.Request.Context(), GetUser(c).ID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateReminder overwrites a reminder and reschedules it.
//
//	@Summary	Update reminder
//	@Tags		reminders
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Reminder ID"
//	@Param		body	body		reminderRequest	true	"Reminder"
//	@Success	200		{object}	models.Reminder
//	@Failure	404		{object}	map[string]string
//	@Router		/api/reminders/{id} [put]
func (h *Handlers) UpdateReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time is required"})
		return
	}
	r := req.reminder()
	r.ID = c.Param("id")

	updated, err := h.reminders.Update(c.Request.Context(), GetUser(c).ID, r)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteReminder removes a reminder and cancels its pending notification.
//
//	@Summary	Delete reminder
//	@Tags		reminders
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Reminder ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/reminders/{id} [delete]
func (h *Handlers) DeleteReminder(c *gin.Context) {
	if err := h.reminders.Delete(c.Request.Context(), GetUser(c).ID, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReminderDelay returns how long until a time of day next occurs in a timezone.
//
//	@Summary	Delay until a time of day
//	@Tags		reminders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		time	query		string	true	"H:MM AM|PM"
//	@Param		tz		query		string	false	"IANA timezone, UTC when omitted"
//	@Success	200		{object}	delayResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/reminders/delay [get]
func (h *Handlers) ReminderDelay(c *gin.Context) {
	t := c.Query("time")
	tz := c.DefaultQuery("tz", reminder.DefaultTimezone)
	loc, err := reminder.LoadTimezone(tz)
	if err != nil {
		h.fail(c, err)
		return
	}

	delay, err := h.reminders.Delay(t, tz)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, delayResponse{
		Time:     t,
		Timezone: loc.String(),
		DelayMS:  delay.Milliseconds(),
		FireAt:   h.now().Add(delay).In(loc).Format(time.RFC3339),
	})
}
