package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"moodcheck/internal/config"
	"moodcheck/internal/handlers"
	"moodcheck/internal/models"
	"moodcheck/internal/store"
)

func clientKey(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

func Setup(log *zap.Logger, st store.Store, catalog *models.Catalog) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	serverConf := config.Conf.Server

	router.Use(cors.New(cors.Config{
		AllowOrigins:     serverConf.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", handlers.SessionHeaderKey, csrfTokenHeaderKey},
		ExposeHeaders:    []string{csrfTokenHeaderKey},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	cookieStore := cookie.NewStore([]byte(serverConf.SessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   serverConf.SessionTTLHours * 3600,
	})
	router.Use(sessions.Sessions("moodcheck_session", cookieStore))

	// --- Now that sessions are initialized, other middleware can use them ---
	router.Use(CSRFProtection(log))
	router.Use(SessionLoader(log, st))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(log, st)
	assessmentHandler := handlers.NewAssessmentHandler(log, st, catalog)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: uint(serverConf.LoginRateLimit),
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      clientKey,
	})

	api := router.Group("/api")
	{
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": config.Conf.Server.PingMessage})
		})

		api.POST("/auth/login", limiter, authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// Questions work without a session: guests get the base set.
		api.GET("/assessment/questions", assessmentHandler.Questions)

		authorized := api.Group("/")
		authorized.Use(AuthRequired())
		{
			authorized.GET("/user", authHandler.CurrentUser)
			authorized.POST("/assessment/submit", assessmentHandler.Submit)
			authorized.GET("/assessment/latest", assessmentHandler.Latest)
		}
	}

	return router
}
