package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"moodcheck/internal/config"
	"moodcheck/internal/store"
)

// Scheduler sends a daily reminder to users who have not checked in yet.
type Scheduler struct {
	log          *zap.Logger
	store        store.Store
	emailService *EmailService
}

func NewScheduler(log *zap.Logger, st store.Store, emailService *EmailService) *Scheduler {
	return &Scheduler{
		log:          log,
		store:        st,
		emailService: emailService,
	}
}

// Start runs the scheduler in a goroutine.
func (s *Scheduler) Start() {
	s.log.Info("Starting reminder scheduler...")
	go func() {
		// Ticker will fire on every minute.
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			s.runReminderCheck()
		}
	}()
}

func (s *Scheduler) runReminderCheck() {
	// The reminder time is a UTC wall-clock value; firing on minute
	// equality means each day sends at most once.
	currentTime := time.Now().UTC().Format("15:04")
	if currentTime != config.Conf.Reminders.Time {
		return
	}
	s.log.Debug("Running reminder check", zap.String("utc_time", currentTime))

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	users, err := s.store.UsersWithoutCheckInSince(context.Background(), startOfDay)
	if err != nil {
		s.log.Error("Failed to get users for check-in reminder", zap.Error(err))
		return
	}

	for _, user := range users {
		go s.emailService.SendCheckInReminder(user)
	}
}
