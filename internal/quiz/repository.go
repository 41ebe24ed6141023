package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizRepository interface {
	Create(q *Quiz, questions []*QuizQuestion) error
	GetByID(id uuid.UUID) (*Quiz, error)
	GetQuestion(id uuid.UUID) (*QuizQuestion, error)
	ListQuestionsByQuiz(quizID uuid.UUID) ([]*QuizQuestion, error)
	Update(q *Quiz) error
	ReplaceQuestions(quizID uuid.UUID, questions []*QuizQuestion) error
	Delete(id uuid.UUID) (int64, error)
	ListByCourse(courseID uuid.UUID) ([]*Quiz, error)
	ListActive(courseIDs []uuid.UUID, now time.Time) ([]*Quiz, error)
	CountQuestions(quizID uuid.UUID) (int64, error)
	CountAttempts(quizID uuid.UUID) (int64, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(q *Quiz, questions []*QuizQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].QuizID = q.ID
		}

		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *quizRepository) GetByID(id uuid.UUID) (*Quiz, error) {
	var quiz Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) GetQuestion(id uuid.UUID) (*QuizQuestion, error) {
	var question QuizQuestion
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *quizRepository) ListQuestionsByQuiz(quizID uuid.UUID) ([]*QuizQuestion, error) {
	var questions []*QuizQuestion
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) Update(q *Quiz) error {
	return r.db.Omit(clause.Associations).Save(q).Error
}

// ReplaceQuestions swaps the whole question set in one transaction so a
// failed insert never leaves the quiz without questions.
func (r *quizRepository) ReplaceQuestions(quizID uuid.UUID, questions []*QuizQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&QuizQuestion{}, "quiz_id = ?", quizID).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].QuizID = quizID
		}

		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *quizRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&Quiz{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *quizRepository) ListByCourse(courseID uuid.UUID) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) ListActive(courseIDs []uuid.UUID, now time.Time) ([]*Quiz, error) {
	query := r.db.
		Where("status = ?", StatusActive).
		Where("start_time IS NULL OR start_time <= ?", now).
		Where("end_time IS NULL OR end_time >= ?", now)

	if len(courseIDs) > 0 {
		query = query.Where("course_id IN ?", courseIDs)
	}

	var quizzes []*Quiz
	if err := query.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) CountQuestions(quizID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&QuizQuestion{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *quizRepository) CountAttempts(quizID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("student_quiz_attempts").Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
