// Package handlers is the JSON HTTP API.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"moneta/internal/auth"
	"moneta/internal/models"
	"moneta/internal/news"
	"moneta/internal/reminder"
	"moneta/internal/repository"
	"moneta/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/vmkteam/embedlog"
)

const (
	// UserContextKey is the gin context key for the authenticated user.
	UserContextKey = "user"
	// SessionContextKey is the gin context key for the session ID.
	SessionContextKey = "session"
	// SessionCookieName is the name of the cookie carrying the bearer token for browsers.
	SessionCookieName = "session"
	// RefreshedTokenHeader carries a new bearer token after a rolling renewal.
	RefreshedTokenHeader = "X-Refreshed-Token"
	// SessionDuration is how long sessions last (30 days).
	SessionDuration = 30 * 24 * time.Hour
)

// Deps are the services the handlers call.
type Deps struct {
	DB            *storage.DB
	Issuer        *auth.Issuer
	Expenses      *repository.Expenses
	Budgets       *repository.Budgets
	Notifications *repository.Notifications
	Reminders     *reminder.Service
	News          *news.Client
	Log           embedlog.Logger
	SecureCookie  bool
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db            *storage.DB
	issuer        *auth.Issuer
	expenses      *repository.Expenses
	budgets       *repository.Budgets
	notifications *repository.Notifications
	reminders     *reminder.Service
	news          *news.Client
	log           embedlog.Logger
	secureCookie  bool
	now           func() time.Time

	streams      context.Context
	closeStreams context.CancelFunc
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(d Deps) *Handlers {
	streams, closeStreams := context.WithCancel(context.Background())
	return &Handlers{
		db:            d.DB,
		issuer:        d.Issuer,
		expenses:      d.Expenses,
		budgets:       d.Budgets,
		notifications: d.Notifications,
		reminders:     d.Reminders,
		news:          d.News,
		log:           d.Log,
		secureCookie:  d.SecureCookie,
		now:           time.Now,
		streams:       streams,
		closeStreams:  closeStreams,
	}
}

// CloseStreams ends every live expense stream, open or opened later. Register it
// with http.Server.RegisterOnShutdown so that Shutdown is not held up by them.
func (h *Handlers) CloseStreams() {
	h.closeStreams()
}

// streamContext ends with the request or with CloseStreams, whichever is first.
func (h *Handlers) streamContext(c *gin.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	stop := context.AfterFunc(h.streams, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Routes registers the API on r.
func (h *Handlers) Routes(r gin.IRouter) {
	r.GET("/status", h.Status)

	api := r.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	protected := api.Group("/", h.AuthMiddleware())
	protected.POST("/logout", h.Logout)
	protected.GET("/profile", h.Profile)
	protected.PUT("/profile", h.UpdateProfile)
	protected.PUT("/device", h.RegisterDevice)

	protected.GET("/expenses", h.ListExpenses)
	protected.GET("/expenses/stream", h.StreamExpenses)
	protected.GET("/expenses/month", h.ListMonthExpenses)
	protected.GET("/expenses/month/stream", h.StreamMonthExpenses)
	protected.GET("/expenses/:id", h.GetExpense)
	protected.POST("/expenses", h.CreateExpense)
	protected.PUT("/expenses/:id", h.UpdateExpense)
	protected.DELETE("/expenses/:id", h.DeleteExpense)

	protected.GET("/budgets", h.ListBudgets)
	protected.PUT("/budgets", h.SetBudget)
	protected.GET("/budgets/:id", h.GetBudget)
	protected.DELETE("/budgets/:id", h.DeleteBudget)

	protected.GET("/reminders", h.ListReminders)
	protected.POST("/reminders", h.CreateReminder)
	protected.GET("/reminders/delay", h.ReminderDelay)
	protected.GET("/reminders/:id", h.GetReminder)
	protected.PUT("/reminders/:id", h.UpdateReminder)
	protected.DELETE("/reminders/:id", h.DeleteReminder)

	protected.GET("/notifications", h.ListNotifications)
	protected.GET("/reports/monthly", h.MonthlyReport)
	protected.GET("/news", h.News)
}

// GetUser retrieves the authenticated user from the gin context.
func GetUser(c *gin.Context) *models.User {
	if user, ok := c.Get(UserContextKey); ok {
		if u, ok := user.(*models.User); ok {
			return u
		}
	}
	return nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware requires a valid bearer token whose session still exists.
// It also implements rolling sessions: if a session is past the halfway point
// of its lifetime, it renews the session and returns a fresh token in
// RefreshedTokenHeader.
func (h *Handlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		claims, err := h.issuer.Parse(token)
		if err != nil {
			h.clearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx := c.Request.Context()
		sessionInfo, err := h.db.ValidateSessionWithInfo(ctx, claims.SessionID)
		if err != nil || sessionInfo.User.ID != claims.Subject {
			h.clearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		// Rolling session: renew if past halfway point
		now := h.now()
		if sessionInfo.ExpiresAt.Sub(now) < SessionDuration/2 {
			newExpiresAt := now.Add(SessionDuration)
			if err := h.db.RenewSession(ctx, claims.SessionID, newExpiresAt); err != nil {
				h.log.Error(ctx, "failed to renew session", "err", err, "user_id", sessionInfo.User.ID)
			} else if fresh, err := h.issuer.Issue(sessionInfo.User.ID, claims.SessionID, newExpiresAt); err == nil {
				c.Header(RefreshedTokenHeader, fresh)
				h.setSessionCookie(c, fresh)
			}
		}

		c.Set(UserContextKey, sessionInfo.User)
		c.Set(SessionContextKey, claims.SessionID)
		c.Next()
	}
}

func (h *Handlers) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(SessionDuration.Seconds()), "/", "", h.secureCookie, true)
}

func (h *Handlers) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", h.secureCookie, true)
}

// fail writes err as a JSON error. Validation errors are 400, missing records 404,
// everything else is logged and hidden behind a 500.
func (h *Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrInvalidCategory),
		errors.Is(err, models.ErrInvalidRepeat),
		errors.Is(err, reminder.ErrInvalidTime),
		errors.Is(err, reminder.ErrInvalidTimezone),
		errors.Is(err, reminder.ErrInvalidReminder),
		errors.Is(err, repository.ErrInvalidBudget),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, errBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, news.ErrNoAPIKey):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.log.Error(c.Request.Context(), "request failed", "err", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

var errBadRequest = errors.New("bad request")

// Status reports whether the database is reachable.
func (h *Handlers) Status(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.log.Error(c.Request.Context(), "status check failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "driver": h.db.Driver()})
}
