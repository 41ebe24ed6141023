package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/Peyu5h/edusynck-sub000/internal/aiquiz"
)

type QuestionInput struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectAnswer int      `json:"correct_answer" validate:"gte=0,lt=4"`
	Points        int      `json:"points" validate:"gte=0"`
}

type CreateQuizDTO struct {
	Title           string                  `json:"title" validate:"required"`
	Description     string                  `json:"description"`
	CourseID        uuid.UUID               `json:"course_id" validate:"required"`
	CreatorID       uuid.UUID               `json:"creator_id" validate:"required"`
	Status          *QuizStatus             `json:"status"`
	StartTime       *time.Time              `json:"start_time"`
	EndTime         *time.Time              `json:"end_time"`
	DurationMinutes *int                    `json:"duration_minutes" validate:"omitempty,gt=0"`
	Questions       []QuestionInput         `json:"questions" validate:"omitempty,dive"`
	Generate        *aiquiz.GenerateRequest `json:"generate,omitempty"`
}

// UpdateQuizDTO applies partial updates: nil fields leave the stored value
// untouched. A non-nil Questions list replaces every question of the quiz.
type UpdateQuizDTO struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	Status          *QuizStatus      `json:"status"`
	StartTime       *time.Time       `json:"start_time"`
	EndTime         *time.Time       `json:"end_time"`
	DurationMinutes *int             `json:"duration_minutes"`
	Questions       *[]QuestionInput `json:"questions"`
}

type QuizSummary struct {
	*Quiz
	QuestionCount int64 `json:"question_count"`
	AttemptCount  int64 `json:"attempt_count"`
}

type ActiveQuizView struct {
	*Quiz
	HasAttempted  bool   `json:"has_attempted"`
	AttemptStatus string `json:"attempt_status,omitempty"`
}

// QuestionView hides the correct answer from students who have not
// completed an attempt.
type QuestionView struct {
	ID            uuid.UUID `json:"id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	Points        int       `json:"points"`
	OrderIndex    int       `json:"order_index"`
	CorrectAnswer *int      `json:"correct_answer,omitempty"`
}

type QuizDetail struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Status          QuizStatus     `json:"status"`
	CourseID        uuid.UUID      `json:"course_id"`
	CreatorID       uuid.UUID      `json:"creator_id"`
	StartTime       *time.Time     `json:"start_time,omitempty"`
	EndTime         *time.Time     `json:"end_time,omitempty"`
	DurationMinutes *int           `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	Questions       []QuestionView `json:"questions"`
}
