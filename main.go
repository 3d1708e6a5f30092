package main

import (
	"time"

	"go.uber.org/zap"

	"moodcheck/internal/config"
	"moodcheck/internal/logging"
	"moodcheck/internal/models"
	"moodcheck/internal/router"
	"moodcheck/internal/services"
	"moodcheck/internal/store"
)

func main() {
	// Load configuration first; the logger settings live in it.
	if err := config.Init("."); err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	// Initialize Logger
	log, err := logging.Init(config.Conf.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)
	log.Info("Configuration loaded successfully")

	// Open the record store
	sessionTTL := time.Duration(config.Conf.Server.SessionTTLHours) * time.Hour
	st, err := store.Open(log, sessionTTL)
	if err != nil {
		log.Fatal("Failed to open record store", zap.Error(err))
	}

	// Load the question catalog at startup
	catalog, err := models.LoadCatalog(config.Conf.Server.QuestionsFile)
	if err != nil {
		log.Fatal("Failed to load question catalog", zap.Error(err))
	}

	// Optional daily check-in reminders
	if config.Conf.Reminders.Enabled {
		emailService := services.NewEmailService(log)
		services.NewScheduler(log, st, emailService).Start()
	}

	// Setup router, passing the logger to it
	r := router.Setup(log, st, catalog)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
