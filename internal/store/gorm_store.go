package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"moodcheck/internal/config"
	"moodcheck/internal/logging"
	"moodcheck/internal/models"
	"moodcheck/internal/utils"
)

// userRow, sessionRow, recordRow, and answerRow are the database shapes.
// They are kept separate from the wire models so the schema can carry
// storage concerns (row ids, indexes) without leaking them.
type userRow struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"uniqueIndex;size:255"` // stored lowercased
	Name      string
	CreatedAt time.Time
}

func (userRow) TableName() string { return "users" }

type sessionRow struct {
	Token     string `gorm:"primaryKey;size:64"`
	UserID    string `gorm:"index;size:36"`
	CreatedAt time.Time
}

func (sessionRow) TableName() string { return "sessions" }

// recordRow uses an auto-increment row id so history order survives
// identical creation timestamps; RecordID is the public identifier.
type recordRow struct {
	ID              uint   `gorm:"primaryKey"`
	RecordID        string `gorm:"uniqueIndex;size:36"`
	UserID          string `gorm:"index;size:36"`
	MoodScore       float64
	AnxietyScore    float64
	Severity        string
	Recommendations pq.StringArray `gorm:"type:text[]"`
	CreatedAt       time.Time
	Answers         []answerRow `gorm:"foreignKey:RecordID;references:RecordID"`
}

func (recordRow) TableName() string { return "records" }

type answerRow struct {
	ID         uint   `gorm:"primaryKey"`
	RecordID   string `gorm:"index;size:36"`
	QuestionID string `gorm:"size:16"`
	Value      string // submitted value as JSON, preserving its type
}

func (answerRow) TableName() string { return "answers" }

// GormStore implements Store on a GORM-managed database.
type GormStore struct {
	db         *gorm.DB
	log        *zap.Logger
	sessionTTL time.Duration
}

var _ Store = (*GormStore)(nil)

// Open connects to the configured database, runs migrations, and returns
// the store. The sqlite driver is the default; postgres is selected via
// database.driver.
func Open(log *zap.Logger, sessionTTL time.Duration) (*GormStore, error) {
	dbConf := config.Conf.Database

	var dialector gorm.Dialector
	switch dbConf.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(dbConf.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", dbConf.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormZapLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&userRow{}, &sessionRow{}, &recordRow{}, &answerRow{}); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	log.Info("Database ready", zap.String("driver", dbConf.Driver))
	return &GormStore{db: db, log: log, sessionTTL: sessionTTL}, nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).First(&row, "email = ?", normalizeEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return userFromRow(row), nil
}

func (s *GormStore) CreateUser(ctx context.Context, email, name string) (*models.User, error) {
	row := userRow{
		ID:        uuid.NewString(),
		Email:     normalizeEmail(email),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	// The transaction makes the existence check and insert atomic enough
	// for the single-writer deployments this targets; the unique index
	// backstops anything that slips through.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing userRow
		if err := tx.First(&existing, "email = ?", row.Email).Error; err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return userFromRow(row), nil
}

func (s *GormStore) UpdateUserName(ctx context.Context, userID, name string) error {
	result := s.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", userID).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateSession(ctx context.Context, userID string) (string, error) {
	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	row := sessionRow{Token: token, UserID: userID, CreatedAt: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return token, nil
}

func (s *GormStore) FindUserBySession(ctx context.Context, token string) (*models.User, error) {
	var sess sessionRow
	err := s.db.WithContext(ctx).First(&sess, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Expired tokens are deleted lazily on lookup. A failed delete only
	// defers the cleanup to the next lookup, but it should not be silent.
	if s.sessionTTL > 0 && time.Since(sess.CreatedAt) > s.sessionTTL {
		if err := s.db.WithContext(ctx).Delete(&sessionRow{}, "token = ?", token).Error; err != nil {
			s.log.Warn("Failed to delete expired session", zap.Error(err))
		}
		return nil, ErrNotFound
	}

	var user userRow
	err = s.db.WithContext(ctx).First(&user, "id = ?", sess.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	return userFromRow(user), nil
}

func (s *GormStore) DeleteSession(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Delete(&sessionRow{}, "token = ?", token).Error
}

func (s *GormStore) AppendRecord(ctx context.Context, record *models.Record) error {
	row := recordRow{
		RecordID:        record.ID,
		UserID:          record.UserID,
		MoodScore:       record.Summary.MoodScore,
		AnxietyScore:    record.Summary.AnxietyScore,
		Severity:        string(record.Summary.Severity),
		Recommendations: pq.StringArray(record.Recommendations),
		CreatedAt:       record.CreatedAt,
	}
	for _, a := range record.Answers {
		value, err := json.Marshal(a.Value)
		if err != nil {
			return fmt.Errorf("failed to encode answer value: %w", err)
		}
		row.Answers = append(row.Answers, answerRow{
			RecordID:   record.ID,
			QuestionID: a.QuestionID,
			Value:      string(value),
		})
	}
	// Creating the record and its answers in one transaction keeps the
	// history append atomic; a crash mid-submit leaves no partial record.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
}

func (s *GormStore) LatestRecord(ctx context.Context, userID string) (*models.Record, error) {
	var row recordRow
	err := s.db.WithContext(ctx).
		Preload("Answers").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return recordFromRow(row), nil
}

func (s *GormStore) UsersWithoutCheckInSince(ctx context.Context, since time.Time) ([]models.User, error) {
	var rows []userRow
	err := s.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM records WHERE records.user_id = users.id AND records.created_at >= ?)", since).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	users := make([]models.User, len(rows))
	for i, row := range rows {
		users[i] = *userFromRow(row)
	}
	return users, nil
}

func userFromRow(row userRow) *models.User {
	return &models.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

func recordFromRow(row recordRow) *models.Record {
	record := &models.Record{
		ID:     row.RecordID,
		UserID: row.UserID,
		Summary: models.Summary{
			MoodScore:    row.MoodScore,
			AnxietyScore: row.AnxietyScore,
			Severity:     models.Severity(row.Severity),
		},
		Recommendations: []string(row.Recommendations),
		CreatedAt:       row.CreatedAt,
	}
	for _, a := range row.Answers {
		var value any
		if err := json.Unmarshal([]byte(a.Value), &value); err != nil {
			value = a.Value
		}
		record.Answers = append(record.Answers, models.Answer{QuestionID: a.QuestionID, Value: value})
	}
	return record
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
