package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"moodcheck/internal/models"
	"moodcheck/internal/utils"
)

// MemoryStore is an in-memory Store used in tests and for throwaway local
// runs. A single mutex serializes writes, so concurrent submissions for
// one user keep their append order.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[string]models.User   // by id
	emailIndex map[string]string        // normalized email -> user id
	sessions   map[string]models.Session
	records    map[string][]models.Record // by user id, append order
	sessionTTL time.Duration
	now        func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(sessionTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]models.User),
		emailIndex: make(map[string]string),
		sessions:   make(map[string]models.Session),
		records:    make(map[string][]models.Record),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, email, name string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := normalizeEmail(email)
	if _, exists := s.emailIndex[normalized]; exists {
		return nil, ErrDuplicateEmail
	}
	user := models.User{
		ID:        uuid.NewString(),
		Email:     normalized,
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	s.users[user.ID] = user
	s.emailIndex[normalized] = user.ID
	return &user, nil
}

func (s *MemoryStore) UpdateUserName(ctx context.Context, userID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.Name = name
	s.users[userID] = user
	return nil
}

func (s *MemoryStore) CreateSession(ctx context.Context, userID string) (string, error) {
	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = models.Session{Token: token, UserID: userID, CreatedAt: s.now().UTC()}
	return token, nil
}

func (s *MemoryStore) FindUserBySession(ctx context.Context, token string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	if s.sessionTTL > 0 && s.now().Sub(sess.CreatedAt) > s.sessionTTL {
		delete(s.sessions, token)
		return nil, ErrNotFound
	}
	user, ok := s.users[sess.UserID]
	if !ok {
		return nil, ErrUnknownUser
	}
	return &user, nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) AppendRecord(ctx context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *record
	stored.Answers = append([]models.Answer(nil), record.Answers...)
	stored.Recommendations = append([]string(nil), record.Recommendations...)
	s.records[record.UserID] = append(s.records[record.UserID], stored)
	return nil
}

func (s *MemoryStore) LatestRecord(ctx context.Context, userID string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.records[userID]
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	latest := history[len(history)-1]
	return &latest, nil
}

func (s *MemoryStore) UsersWithoutCheckInSince(ctx context.Context, since time.Time) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var users []models.User
	for id, user := range s.users {
		recent := false
		for _, record := range s.records[id] {
			if !record.CreatedAt.Before(since) {
				recent = true
				break
			}
		}
		if !recent {
			users = append(users, user)
		}
	}
	return users, nil
}
