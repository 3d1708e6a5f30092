package services

import (
	"fmt"

	"go.uber.org/zap"

	"moodcheck/internal/models"
)

// EmailService is a placeholder for a real email sending service.
type EmailService struct {
	log *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{log: log}
}

// SendCheckInReminder simulates sending a check-in reminder email.
func (s *EmailService) SendCheckInReminder(user models.User) {
	s.log.Info("Sending check-in reminder email",
		zap.String("to", user.Email),
		zap.String("name", user.Name),
	)
	// A real deployment would use an SMTP client with a templated HTML
	// email here.
	fmt.Printf("--- SIMULATING EMAIL ---\nTo: %s\nSubject: How are you feeling today?\nHi %s,\nThis is a friendly reminder to complete today's mood check-in.\n\n", user.Email, user.Name)
}
