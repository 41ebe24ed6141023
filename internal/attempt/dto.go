package attempt

import (
	"time"

	"github.com/google/uuid"
)

type StartAttemptDTO struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
}

type SubmitAnswerDTO struct {
	QuestionID     uuid.UUID `json:"questionId" validate:"required"`
	SelectedOption int       `json:"selectedOption" validate:"gte=0"`
}

type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
	Duration    string    `json:"duration"`
}

type QuestionResult struct {
	QuestionID     uuid.UUID `json:"question_id"`
	Question       string    `json:"question"`
	Options        []string  `json:"options"`
	CorrectAnswer  int       `json:"correct_answer"`
	Points         int       `json:"points"`
	SelectedOption *int      `json:"selected_option,omitempty"`
	IsCorrect      bool      `json:"is_correct"`
}

type AttemptResult struct {
	Attempt   *StudentQuizAttempt `json:"attempt"`
	Questions []QuestionResult    `json:"questions"`
	Total     int                 `json:"total_points"`
}

type StudentProgress struct {
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Score       *int       `json:"score,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type ProgressStats struct {
	AttemptedCount int     `json:"attempted_count"`
	CompletedCount int     `json:"completed_count"`
	AverageScore   float64 `json:"average_score"`
	HighestScore   int     `json:"highest_score"`
	LowestScore    int     `json:"lowest_score"`
}

type ProgressView struct {
	Students []StudentProgress `json:"students"`
	Stats    ProgressStats     `json:"stats"`
}
