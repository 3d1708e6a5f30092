package store

import (
	"context"
	"errors"
	"time"

	"moodcheck/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches nothing, including
	// expired sessions.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by CreateUser when the email is
	// already registered (compared case-insensitively).
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUnknownUser is returned when a session resolves to a user id
	// absent from the store. This is an integrity fault, not a normal
	// miss.
	ErrUnknownUser = errors.New("session references unknown user")
)

// Store is the persistence capability for users, sessions, and check-in
// history. Implementations must keep a user's records in append order.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, email, name string) (*models.User, error)
	UpdateUserName(ctx context.Context, userID, name string) error

	CreateSession(ctx context.Context, userID string) (string, error)
	FindUserBySession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error

	AppendRecord(ctx context.Context, record *models.Record) error
	LatestRecord(ctx context.Context, userID string) (*models.Record, error)

	// UsersWithoutCheckInSince lists users with no record created at or
	// after the given time. Used by the reminder scheduler.
	UsersWithoutCheckInSince(ctx context.Context, since time.Time) ([]models.User, error)
}
