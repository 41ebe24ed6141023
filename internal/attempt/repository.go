package attempt

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	Create(a *StudentQuizAttempt) error
	FindByID(id uuid.UUID) (*StudentQuizAttempt, error)
	FindByQuizAndUser(quizID, userID uuid.UUID) (*StudentQuizAttempt, error)
	Complete(a *StudentQuizAttempt) (int64, error)
	UpsertAnswer(ans *StudentQuestionAnswer) error
	ListAnswers(attemptID uuid.UUID) ([]*StudentQuestionAnswer, error)
	ListByQuiz(quizID uuid.UUID) ([]*StudentQuizAttempt, error)
	ListCompletedByQuiz(quizID uuid.UUID) ([]*StudentQuizAttempt, error)
	ListByUser(userID uuid.UUID) ([]*StudentQuizAttempt, error)
	StatusByQuiz(userID uuid.UUID, quizIDs []uuid.UUID) (map[uuid.UUID]string, error)
	HasCompleted(quizID, userID uuid.UUID) (bool, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(a *StudentQuizAttempt) error {
	return r.db.Create(a).Error
}

func (r *attemptRepository) FindByID(id uuid.UUID) (*StudentQuizAttempt, error) {
	var attempt StudentQuizAttempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByQuizAndUser(quizID, userID uuid.UUID) (*StudentQuizAttempt, error) {
	var attempt StudentQuizAttempt
	err := r.db.First(&attempt, "quiz_id = ? AND user_id = ?", quizID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

// Complete finalizes an attempt only while it is still in progress: the
// status predicate makes the slower side of a concurrent double-complete
// update zero rows.
func (r *attemptRepository) Complete(a *StudentQuizAttempt) (int64, error) {
	result := r.db.Model(&StudentQuizAttempt{}).
		Where("id = ? AND status = ?", a.ID, StatusInProgress).
		Updates(map[string]interface{}{
			"status":       a.Status,
			"score":        a.Score,
			"completed_at": a.CompletedAt,
		})
	return result.RowsAffected, result.Error
}

// UpsertAnswer relies on the (attempt_id, question_id) unique index: a retry
// or a changed mind updates the existing row instead of inserting a second.
func (r *attemptRepository) UpsertAnswer(ans *StudentQuestionAnswer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_option", "is_correct", "answered_at",
		}),
	}).Create(ans).Error
}

func (r *attemptRepository) ListAnswers(attemptID uuid.UUID) ([]*StudentQuestionAnswer, error) {
	var answers []*StudentQuestionAnswer
	if err := r.db.
		Where("attempt_id = ?", attemptID).
		Order("answered_at ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *attemptRepository) ListByQuiz(quizID uuid.UUID) ([]*StudentQuizAttempt, error) {
	var attempts []*StudentQuizAttempt
	if err := r.db.
		Preload("User").
		Where("quiz_id = ?", quizID).
		Order("started_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) ListCompletedByQuiz(quizID uuid.UUID) ([]*StudentQuizAttempt, error) {
	var attempts []*StudentQuizAttempt
	if err := r.db.
		Preload("User").
		Where("quiz_id = ? AND status = ?", quizID, StatusCompleted).
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) ListByUser(userID uuid.UUID) ([]*StudentQuizAttempt, error) {
	var attempts []*StudentQuizAttempt
	if err := r.db.
		Preload("Quiz").
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) StatusByQuiz(userID uuid.UUID, quizIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	statuses := make(map[uuid.UUID]string, len(quizIDs))
	if len(quizIDs) == 0 {
		return statuses, nil
	}

	var rows []struct {
		QuizID uuid.UUID
		Status string
	}
	if err := r.db.Model(&StudentQuizAttempt{}).
		Select("quiz_id", "status").
		Where("user_id = ? AND quiz_id IN ?", userID, quizIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		statuses[row.QuizID] = row.Status
	}
	return statuses, nil
}

func (r *attemptRepository) HasCompleted(quizID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&StudentQuizAttempt{}).
		Where("quiz_id = ? AND user_id = ? AND status = ?", quizID, userID, StatusCompleted).
		Count(&count).Error
	return count > 0, err
}
