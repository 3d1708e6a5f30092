package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodcheck/internal/store"
	"moodcheck/internal/utils"
)

type AuthHandler struct {
	log   *zap.Logger
	store store.Store
}

func NewAuthHandler(log *zap.Logger, st store.Store) *AuthHandler {
	return &AuthHandler{log: log, store: st}
}

type loginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login is passwordless: a valid email gets or creates the user and
// issues a fresh session token. The token is returned in the body and
// also stored in the cookie session for same-origin browser flows.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || !utils.IsValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email is required"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.FindUserByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		user, err = h.store.CreateUser(ctx, req.Email, req.Name)
		if errors.Is(err, store.ErrDuplicateEmail) {
			// Lost a create race; the user exists now.
			user, err = h.store.FindUserByEmail(ctx, req.Email)
		}
		if err != nil {
			h.log.Error("Failed to create user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
			return
		}
	case err != nil:
		h.log.Error("Failed to look up user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	default:
		// A name supplied on a later login backfills an empty one.
		if req.Name != "" && user.Name == "" {
			if err := h.store.UpdateUserName(ctx, user.ID, req.Name); err != nil {
				h.log.Warn("Failed to update user name", zap.String("userID", user.ID), zap.Error(err))
			} else {
				user.Name = req.Name
			}
		}
	}

	token, err := h.store.CreateSession(ctx, user.ID)
	if err != nil {
		h.log.Error("Failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	session := sessions.Default(c)
	session.Set(SessionCookieKey, token)
	if err := session.Save(); err != nil {
		// Header-based clients are unaffected; log and continue.
		h.log.Warn("Failed to save cookie session", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": token, "user": user})
}

// CurrentUser echoes the identity resolved from the session token.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, ok := CurrentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout deletes the session server-side and clears the cookie session.
// Deleting a token is the only revocation path besides expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	token := c.GetHeader(SessionHeaderKey)
	if token == "" {
		token, _ = session.Get(SessionCookieKey).(string)
	}
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session"})
		return
	}

	if err := h.store.DeleteSession(c.Request.Context(), token); err != nil {
		h.log.Error("Failed to delete session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.log.Warn("Failed to clear cookie session", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
