package handlers

import (
	"errors"
	"net/http"
	"strings"

	"moneta/internal/auth"
	"moneta/internal/models"
	"moneta/internal/storage"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type deviceRequest struct {
	Token string `json:"token" binding:"required"`
}

// Register creates an account and signs it in.
//
//	@Summary	Register a user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		credentials	true	"Credentials"
//	@Success	201		{object}	loginResponse
//	@Failure	400		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Router		/api/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := auth.ValidatePassword(req.Password); err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.db.GetUserByUsername(ctx, req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username is taken"})
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		h.fail(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	user, err := h.db.CreateUser(ctx, req.Username, hash)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Print(ctx, "user registered", "user_id", user.ID, "username", user.Username)

	token, err := h.startSession(c, user)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, loginResponse{Token: token, User: user})
}

// Login checks credentials and opens a session.
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		credentials	true	"Credentials"
//	@Success	200		{object}	loginResponse
//	@Failure	401		{object}	map[string]string
//	@Router		/api/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, err := h.startSession(c, user)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *Handlers) startSession(c *gin.Context, user *models.User) (string, error) {
	sessionID, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	expiresAt := h.now().Add(SessionDuration)
	if err := h.db.CreateSession(c.Request.Context(), sessionID, user.ID, expiresAt); err != nil {
		return "", err
	}

	token, err := h.issuer.Issue(user.ID, sessionID, expiresAt)
	if err != nil {
		return "", err
	}
	h.setSessionCookie(c, token)
	return token, nil
}

// Logout ends the current session and drops the user's cached expenses.
//
//	@Summary	Log out
//	@Tags		auth
//	@Security	BearerAuth
//	@Success	204
//	@Router		/api/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.db.DeleteSession(c.Request.Context(), c.GetString(SessionContextKey)); err != nil {
		h.log.Error(c.Request.Context(), "failed to delete session", "err", err)
	}
	if err := h.expenses.Forget(c.Request.Context(), GetUser(c).ID); err != nil {
		h.log.Error(c.Request.Context(), "failed to clear cached expenses", "err", err)
	}
	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

// Profile returns the signed-in user.
//
//	@Summary	Current user
//	@Tags		profile
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	models.User
//	@Router		/api/profile [get]
func (h *Handlers) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, GetUser(c))
}

// UpdateProfile changes display name and email.
//
//	@Summary	Update profile
//	@Tags		profile
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		profileRequest	true	"Profile"
//	@Success	200		{object}	models.User
//	@Router		/api/profile [put]
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errBadRequest)
		return
	}

	ctx := c.Request.Context()
	user := GetUser(c)
	if _, err := h.db.UpdateProfile(ctx, user.ID, strings.TrimSpace(req.DisplayName), strings.TrimSpace(req.Email)); err != nil {
		h.fail(c, err)
		return
	}

	updated, err := h.db.GetUserByID(ctx, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Print(ctx, "profile updated", "user_id", user.ID)
	c.JSON(http.StatusOK, updated)
}

// RegisterDevice stores the push token reminders are delivered to.
//
//	@Summary	Register push device
//	@Tags		profile
//	@Security	BearerAuth
//	@Accept		json
//	@Param		body	body	deviceRequest	true	"Device token"
//	@Success	204
//	@Router		/api/device [put]
func (h *Handlers) RegisterDevice(c *gin.Context) {
	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	user := GetUser(c)
	if _, err := h.db.SetDeviceToken(c.Request.Context(), user.ID, strings.TrimSpace(req.Token)); err != nil {
		h.fail(c, err)
		return
	}
	h.log.Print(c.Request.Context(), "device registered", "user_id", user.ID)
	c.Status(http.StatusNoContent)
}
