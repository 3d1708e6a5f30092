package assessment

import "moodcheck/internal/models"

// tipThreshold gates the two extra domain tips, independent of the
// severity thresholds.
const tipThreshold = 3.5

var adviceBlocks = map[models.Severity][]string{
	models.SeverityLow: {
		"Keep up healthy habits: regular sleep, movement, and time with friends.",
		"Try a 5-minute breathing exercise during study breaks.",
		"Use campus wellness resources when needed.",
	},
	models.SeverityModerate: {
		"Schedule a brief check-in with a counselor or peer support.",
		"Use guided journaling to track triggers and moods.",
		"Practice the 3-3-3 grounding technique during stress.",
	},
	models.SeverityHigh: {
		"Consider contacting campus counseling for a professional evaluation.",
		"Create a support plan with trusted friends or mentors.",
		"If in crisis, call local emergency services or a crisis hotline immediately.",
	},
}

const (
	anxietyTip = "Try short, daily mindfulness sessions (5-10 min)."
	moodTip    = "Plan small, enjoyable activities each day to boost mood."
)

// AdviceFor maps a summary to its recommendation list: the fixed block for
// the summary's severity, then the anxiety tip and the mood tip when the
// matching score reaches the tip threshold. Never returns an empty list.
func AdviceFor(summary models.Summary) []string {
	recommendations := make([]string, 0, 5)
	recommendations = append(recommendations, adviceBlocks[summary.Severity]...)
	if summary.AnxietyScore >= tipThreshold {
		recommendations = append(recommendations, anxietyTip)
	}
	if summary.MoodScore >= tipThreshold {
		recommendations = append(recommendations, moodTip)
	}
	return recommendations
}
