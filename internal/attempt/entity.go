package attempt

import (
	"time"

	"github.com/google/uuid"

	"github.com/Peyu5h/edusynck-sub000/internal/quiz"
	"github.com/Peyu5h/edusynck-sub000/internal/user"
)

type AttemptStatus string

const (
	StatusInProgress AttemptStatus = "IN_PROGRESS"
	StatusCompleted  AttemptStatus = "COMPLETED"
)

// StudentQuizAttempt is the permanent record of one student's run through a
// quiz. The unique index on (quiz_id, user_id) makes concurrent double-start
// a deterministic conflict instead of a duplicated row.
type StudentQuizAttempt struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID      uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_quiz_user" json:"quiz_id"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_quiz_user" json:"user_id"`
	Status      AttemptStatus `gorm:"type:text;not null;default:'IN_PROGRESS';index" json:"status"`
	Score       int           `gorm:"not null;default:0" json:"score"`
	StartedAt   time.Time     `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`

	Quiz    *quiz.Quiz              `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"quiz,omitempty"`
	User    *user.User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Answers []StudentQuestionAnswer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// StudentQuestionAnswer records the latest choice for one question of one
// attempt; resubmission updates the row in place (last write wins).
type StudentQuestionAnswer struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AttemptID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_attempt_question" json:"attempt_id"`
	QuestionID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_attempt_question" json:"question_id"`
	SelectedOption int       `gorm:"not null" json:"selected_option"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	AnsweredAt     time.Time `gorm:"not null" json:"answered_at"`
}
