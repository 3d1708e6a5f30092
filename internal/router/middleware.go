package router

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodcheck/internal/handlers"
	"moodcheck/internal/store"
)

// cookieAuthContextKey marks requests that authenticated via the cookie
// session rather than the X-Session-Id header. CSRF checks key off it.
const cookieAuthContextKey = "cookie_auth"

// SessionLoader resolves the caller's identity from the session token.
// The X-Session-Id header wins; the cookie session is the fallback for
// same-origin browser flows. Guests proceed with no user in the context.
func SessionLoader(log *zap.Logger, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(handlers.SessionHeaderKey)
		fromCookie := false
		if token == "" {
			session := sessions.Default(c)
			token, _ = session.Get(handlers.SessionCookieKey).(string)
			fromCookie = token != ""
		}
		if token == "" {
			c.Next()
			return
		}

		user, err := st.FindUserBySession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, store.ErrUnknownUser) {
				// Integrity fault: the session points at a user that no
				// longer exists. Drop the session so it can't recur.
				log.Error("Session resolved to missing user", zap.Error(err))
				if delErr := st.DeleteSession(c.Request.Context(), token); delErr != nil {
					log.Error("Failed to delete orphaned session", zap.Error(delErr))
				}
			} else if !errors.Is(err, store.ErrNotFound) {
				log.Error("Failed to resolve session", zap.Error(err))
			}
			if fromCookie {
				// Clear the stale cookie session and treat as a guest.
				session := sessions.Default(c)
				session.Clear()
				session.Options(sessions.Options{Path: "/", MaxAge: -1})
				if saveErr := session.Save(); saveErr != nil {
					log.Warn("Failed to clear stale cookie session", zap.Error(saveErr))
				}
			}
			c.Next()
			return
		}

		c.Set(handlers.UserContextKey, user)
		c.Set(cookieAuthContextKey, fromCookie)
		c.Next()
	}
}

// AuthRequired rejects requests where the session loader found no user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(handlers.UserContextKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
