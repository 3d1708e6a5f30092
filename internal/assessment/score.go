package assessment

import (
	"math"
	"strconv"
	"strings"

	"moodcheck/internal/models"
)

// domainOf is the closed mapping from question identifier to scoring
// domain. Answers to identifiers outside this map are ignored.
var domainOf = map[string]models.Domain{
	"m1": models.DomainMood,
	"m2": models.DomainMood,
	"m3": models.DomainMood,
	"m4": models.DomainMood,
	"a1": models.DomainAnxiety,
	"a2": models.DomainAnxiety,
	"a3": models.DomainAnxiety,
	"a4": models.DomainAnxiety,
}

// Severity thresholds are inclusive lower bounds on either domain score.
const (
	highThreshold     = 4.0
	moderateThreshold = 3.0
)

// Summarize turns a set of raw answers into per-domain scores and a
// severity tier. Each domain score is the mean of that domain's answer
// values rounded to one decimal place, or 0 when the domain has no
// answers. Malformed values coerce to 0; this function never fails.
func Summarize(answers []models.Answer) models.Summary {
	var moodVals, anxietyVals []float64
	for _, a := range answers {
		switch domainOf[a.QuestionID] {
		case models.DomainMood:
			moodVals = append(moodVals, coerceValue(a.Value))
		case models.DomainAnxiety:
			anxietyVals = append(anxietyVals, coerceValue(a.Value))
		}
	}

	moodScore := round1(mean(moodVals))
	anxietyScore := round1(mean(anxietyVals))

	return models.Summary{
		MoodScore:    moodScore,
		AnxietyScore: anxietyScore,
		Severity:     severityFor(moodScore, anxietyScore),
	}
}

func severityFor(moodScore, anxietyScore float64) models.Severity {
	switch {
	case moodScore >= highThreshold || anxietyScore >= highThreshold:
		return models.SeverityHigh
	case moodScore >= moderateThreshold || anxietyScore >= moderateThreshold:
		return models.SeverityModerate
	default:
		return models.SeverityLow
	}
}

// coerceValue converts an answer value to a finite number. JSON numbers
// pass through as-is; strings are parsed as a leading integer; anything
// else, including non-finite numbers, scores 0.
func coerceValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case float32:
		return coerceValue(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return float64(leadingInt(n))
	default:
		return 0
	}
}

// leadingInt parses the longest integer prefix of s, so "3.7" reads as 3.
// An unparseable string reads as 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// round1 rounds to one decimal place, halves toward positive infinity.
// Coerced string values can go negative, so half-up is applied exactly
// rather than half-away-from-zero.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
