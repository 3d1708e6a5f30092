package assessment

import (
	"reflect"
	"testing"

	"moodcheck/internal/models"
)

func TestSummarizeScores(t *testing.T) {
	cases := []struct {
		name        string
		answers     []models.Answer
		wantMood    float64
		wantAnxiety float64
		wantTier    models.Severity
	}{
		{
			name:     "no answers",
			answers:  nil,
			wantTier: models.SeverityLow,
		},
		{
			name: "unmapped identifiers only",
			answers: []models.Answer{
				{QuestionID: "x1", Value: float64(5)},
				{QuestionID: "q9", Value: float64(5)},
			},
			wantTier: models.SeverityLow,
		},
		{
			name: "rounding to one decimal",
			answers: []models.Answer{
				{QuestionID: "m1", Value: float64(3)},
				{QuestionID: "m2", Value: float64(4)},
			},
			wantMood: 3.5,
			wantTier: models.SeverityModerate,
		},
		{
			name: "repeating mean rounds to one decimal",
			answers: []models.Answer{
				{QuestionID: "a1", Value: float64(2)},
				{QuestionID: "a2", Value: float64(2)},
				{QuestionID: "a3", Value: float64(3)},
			},
			wantAnxiety: 2.3,
			wantTier:    models.SeverityLow,
		},
		{
			name: "both domains scored independently",
			answers: []models.Answer{
				{QuestionID: "m1", Value: float64(1)},
				{QuestionID: "m2", Value: float64(2)},
				{QuestionID: "a1", Value: float64(5)},
				{QuestionID: "a2", Value: float64(4)},
			},
			wantMood:    1.5,
			wantAnxiety: 4.5,
			wantTier:    models.SeverityHigh,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Summarize(c.answers)
			if got.MoodScore != c.wantMood || got.AnxietyScore != c.wantAnxiety {
				t.Fatalf("Summarize() scores = (%v, %v), want (%v, %v)",
					got.MoodScore, got.AnxietyScore, c.wantMood, c.wantAnxiety)
			}
			if got.Severity != c.wantTier {
				t.Fatalf("Summarize() severity = %q, want %q", got.Severity, c.wantTier)
			}
		})
	}
}

func TestSeverityBoundaries(t *testing.T) {
	cases := []struct {
		mood, anxiety float64
		want          models.Severity
	}{
		{4.0, 0, models.SeverityHigh},
		{0, 4.0, models.SeverityHigh},
		{3.0, 0, models.SeverityModerate},
		{0, 3.0, models.SeverityModerate},
		{2.9, 2.9, models.SeverityLow},
		{3.9, 3.9, models.SeverityModerate},
		{0, 0, models.SeverityLow},
	}
	for _, c := range cases {
		if got := severityFor(c.mood, c.anxiety); got != c.want {
			t.Fatalf("severityFor(%v, %v) = %q, want %q", c.mood, c.anxiety, got, c.want)
		}
	}
}

func TestCoerceValue(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{float64(4), 4},
		{float64(3.5), 3.5},
		{"3", 3},
		{"3.7", 3},
		{"  5 ", 5},
		{"abc", 0},
		{"", 0},
		{nil, 0},
		{true, 0},
		{[]string{"4"}, 0},
	}
	for _, c := range cases {
		if got := coerceValue(c.in); got != c.want {
			t.Fatalf("coerceValue(%#v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSummarizeMalformedValues(t *testing.T) {
	answers := []models.Answer{
		{QuestionID: "m1", Value: "not a number"},
		{QuestionID: "m2", Value: float64(4)},
	}
	got := Summarize(answers)
	if got.MoodScore != 2.0 {
		t.Fatalf("mood score = %v, want 2.0 (malformed value coerces to 0)", got.MoodScore)
	}
}

func TestSummarizeNegativeHalfRoundsUp(t *testing.T) {
	// Coerced strings can push a mean negative; a negative half still
	// rounds toward positive infinity (-0.25 -> -0.2, not -0.3).
	answers := []models.Answer{
		{QuestionID: "m1", Value: "-3"},
		{QuestionID: "m2", Value: "2"},
		{QuestionID: "m3", Value: "0"},
		{QuestionID: "m4", Value: "0"},
	}
	got := Summarize(answers)
	if got.MoodScore != -0.2 {
		t.Fatalf("mood score = %v, want -0.2", got.MoodScore)
	}
	if got.Severity != models.SeverityLow {
		t.Fatalf("severity = %q, want %q", got.Severity, models.SeverityLow)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	answers := []models.Answer{
		{QuestionID: "m1", Value: float64(3)},
		{QuestionID: "a1", Value: "4"},
		{QuestionID: "a2", Value: "bogus"},
	}
	first := Summarize(answers)
	second := Summarize(answers)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Summarize not idempotent: %+v vs %+v", first, second)
	}
}
