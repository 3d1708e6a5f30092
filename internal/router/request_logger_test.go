package router

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"moodcheck/internal/config"
	"moodcheck/internal/handlers"
	"moodcheck/internal/store"
)

func TestRequestLoggerFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = &config.Config{
		Server: config.ServerConfig{
			SessionSecret:   "test-secret",
			SessionTTLHours: 1,
			PingMessage:     "ping",
			AllowedOrigins:  []string{"http://localhost:5173"},
			LoginRateLimit:  100,
		},
	}
	core, logs := observer.New(zapcore.DebugLevel)
	st := store.NewMemoryStore(time.Hour)
	r := Setup(zap.New(core), st, testCatalog())

	token, loginResp := login(t, r, "sam@example.com", "")
	var userID string
	{
		var parsed struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(loginResp.Body.Bytes(), &parsed))
		userID = parsed.User.ID
	}

	w := doRequest(r, http.MethodGet, "/api/user", "", map[string]string{handlers.SessionHeaderKey: token})
	require.Equal(t, http.StatusOK, w.Code)

	entries := logs.FilterMessage("HTTP request").All()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1].ContextMap()
	assert.Equal(t, "/api/user", last["path"])
	assert.Equal(t, int64(http.StatusOK), last["status"])
	assert.Equal(t, userID, last["user_id"])

	// Failures are promoted to Warn.
	w = doRequest(r, http.MethodGet, "/api/user", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	warns := logs.FilterMessage("HTTP client error").All()
	require.NotEmpty(t, warns)
	assert.Equal(t, int64(http.StatusUnauthorized), warns[len(warns)-1].ContextMap()["status"])
}
