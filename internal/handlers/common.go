package handlers

import (
	"github.com/gin-gonic/gin"

	"moodcheck/internal/models"
)

// Context and cookie-session keys shared with the router middleware.
const (
	UserContextKey   = "user"
	SessionCookieKey = "sessionToken"
	SessionHeaderKey = "X-Session-Id"
)

// CurrentUserFrom returns the authenticated user placed in the context by
// the session loader middleware, if any.
func CurrentUserFrom(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
