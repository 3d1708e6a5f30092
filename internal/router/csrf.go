package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodcheck/internal/handlers"
	"moodcheck/internal/utils"
)

const (
	csrfTokenSessionKey = "csrf_token"
	csrfTokenHeaderKey  = "X-CSRF-Token"
)

// CSRFProtection guards cookie-session flows. A token is minted into the
// cookie session and echoed back as a response header; unsafe requests
// that authenticate via the cookie must return it in the request header.
// Requests carrying X-Session-Id are bearer-token calls a cross-site
// attacker cannot forge, so they skip validation.
func CSRFProtection(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		token, _ := session.Get(csrfTokenSessionKey).(string)
		if token == "" {
			newToken, err := utils.GenerateSecureToken(32)
			if err != nil {
				log.Error("Failed to generate CSRF token", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
				return
			}
			token = newToken
			session.Set(csrfTokenSessionKey, token)
			if err := session.Save(); err != nil {
				log.Error("Failed to save session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
				return
			}
		}

		// Expose the token so the frontend can echo it back.
		c.Header(csrfTokenHeaderKey, token)

		unsafe := c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch ||
			c.Request.Method == http.MethodDelete
		usesCookieAuth := c.GetHeader(handlers.SessionHeaderKey) == "" &&
			session.Get(handlers.SessionCookieKey) != nil

		if unsafe && usesCookieAuth {
			if c.GetHeader(csrfTokenHeaderKey) != token {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid CSRF token"})
				return
			}
		}

		c.Next()
	}
}
