package assessment

import "moodcheck/internal/models"

// followUpThreshold is the prior-score floor at which a domain's follow-up
// pair is added to the next check-in.
const followUpThreshold = 3.0

// QuestionsFor selects the question set for a user's next check-in. The
// base set is always returned in catalog order. When a prior summary
// exists, follow-up pairs are appended for each domain whose prior score
// reached the threshold, anxiety follow-ups before mood follow-ups.
func QuestionsFor(catalog *models.Catalog, prior *models.Summary) []models.Question {
	questions := make([]models.Question, 0, len(catalog.Base)+len(catalog.FollowUpAnxiety)+len(catalog.FollowUpMood))
	questions = append(questions, catalog.Base...)
	if prior == nil {
		return questions
	}
	if prior.AnxietyScore >= followUpThreshold {
		questions = append(questions, catalog.FollowUpAnxiety...)
	}
	if prior.MoodScore >= followUpThreshold {
		questions = append(questions, catalog.FollowUpMood...)
	}
	return questions
}
