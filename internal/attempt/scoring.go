package attempt

import (
	"time"

	"github.com/Peyu5h/edusynck-sub000/internal/quiz"
)

// computeScore sums the point value of every correct answer. Unanswered
// questions contribute zero. When a deadline is given, answers recorded
// after it are excluded from the sum.
func computeScore(questions []quiz.QuizQuestion, answers []*StudentQuestionAnswer, deadline *time.Time) int {
	points := make(map[string]int, len(questions))
	for i := range questions {
		points[questions[i].ID.String()] = questions[i].Points
	}

	score := 0
	for _, ans := range answers {
		if !ans.IsCorrect {
			continue
		}
		if deadline != nil && ans.AnsweredAt.After(*deadline) {
			continue
		}
		score += points[ans.QuestionID.String()]
	}
	return score
}
