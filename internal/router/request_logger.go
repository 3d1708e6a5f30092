package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodcheck/internal/handlers"
)

// RequestLogger logs every request through zap once the handler chain has
// finished. Steady-state traffic stays at Debug so the per-level log
// files aren't drowned; client and server failures are promoted.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		// The session loader has run by the time the chain unwinds, so
		// entries can be tied to the caller they happened to.
		if user, ok := handlers.CurrentUserFrom(c); ok {
			fields = append(fields, zap.String("user_id", user.ID))
		}

		switch {
		case status >= 500:
			log.Error("HTTP server error", fields...)
		case status >= 400:
			log.Warn("HTTP client error", fields...)
		default:
			log.Debug("HTTP request", fields...)
		}
	}
}
