package models

import "time"

// Severity buckets a summary into one of three tiers. The tier picks the
// advice block shown after a check-in.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// Domain is the question category answers are grouped under for scoring.
type Domain string

const (
	DomainMood    Domain = "mood"
	DomainAnxiety Domain = "anxiety"
)

// Summary holds the per-domain scores and the severity tier derived from
// them. It is computed once at submission time and stored with the record;
// it is never recomputed afterwards, even if scoring rules change.
type Summary struct {
	MoodScore    float64  `json:"moodScore"`
	AnxietyScore float64  `json:"anxietyScore"`
	Severity     Severity `json:"severity"`
}

// Answer is one response to a catalog question. Value arrives from JSON as
// either a number or a string; the scoring engine coerces it.
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      any    `json:"value"`
}

// Record is an immutable snapshot of one completed check-in. The
// recommendations shown at submission time are stored alongside the summary
// so the record reflects exactly what the user saw.
type Record struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Answers         []Answer  `json:"answers"`
	Summary         Summary   `json:"summary"`
	Recommendations []string  `json:"recommendations,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session maps an opaque bearer token to a user. Tokens expire after the
// configured TTL; lookup past that point behaves as "no such session".
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}
