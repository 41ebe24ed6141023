package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Peyu5h/edusynck-sub000/internal/aiquiz"
	"github.com/Peyu5h/edusynck-sub000/internal/config"
	"github.com/Peyu5h/edusynck-sub000/internal/course"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
	ErrValidation   = errors.New("validation failed")
	ErrNoQuestions  = errors.New("quiz requires a question list or generation input")
)

var validate = validator.New()

// AttemptLookup is implemented by the attempt package; it keeps the catalog
// free of a dependency cycle while still letting active listings reflect
// per-student attempt state.
type AttemptLookup interface {
	StatusByQuiz(userID uuid.UUID, quizIDs []uuid.UUID) (map[uuid.UUID]string, error)
	HasCompleted(quizID, userID uuid.UUID) (bool, error)
}

type QuizService interface {
	Create(ctx context.Context, dto CreateQuizDTO) (*Quiz, error)
	Update(ctx context.Context, quizID uuid.UUID, dto UpdateQuizDTO) (*Quiz, error)
	Delete(ctx context.Context, quizID uuid.UUID) error
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]QuizSummary, error)
	ListActive(ctx context.Context, courseID, userID *uuid.UUID) ([]ActiveQuizView, error)
	Get(ctx context.Context, quizID uuid.UUID, userID *uuid.UUID) (*QuizDetail, error)
}

type quizService struct {
	repo       QuizRepository
	courseRepo course.CourseRepository
	generator  aiquiz.Service
	attempts   AttemptLookup
}

func NewService(repo QuizRepository, courseRepo course.CourseRepository, generator aiquiz.Service, attempts AttemptLookup) QuizService {
	return &quizService{
		repo:       repo,
		courseRepo: courseRepo,
		generator:  generator,
		attempts:   attempts,
	}
}

func (s *quizService) Create(ctx context.Context, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)
	log.Info("Criando novo quiz...")

	if err := validate.Struct(dto); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(dto.Questions) == 0 && dto.Generate == nil {
		return nil, ErrNoQuestions
	}

	inputs := dto.Questions
	if len(inputs) == 0 {
		generated, err := s.generator.GenerateQuestions(ctx, *dto.Generate)
		if err != nil {
			log.WithError(err).Error("Erro ao gerar perguntas com IA")
			return nil, err
		}
		for _, g := range generated {
			inputs = append(inputs, QuestionInput{
				Question:      g.Question,
				Options:       g.Options,
				CorrectAnswer: g.CorrectAnswer,
				Points:        g.Points,
			})
		}
	}

	status := StatusDraft
	if dto.Status != nil {
		if !dto.Status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *dto.Status)
		}
		status = *dto.Status
	}

	q := &Quiz{
		ID:              uuid.New(),
		Title:           dto.Title,
		Description:     dto.Description,
		Status:          status,
		CourseID:        dto.CourseID,
		CreatorID:       dto.CreatorID,
		StartTime:       dto.StartTime,
		EndTime:         dto.EndTime,
		DurationMinutes: dto.DurationMinutes,
	}

	questions, err := buildQuestions(inputs)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(q, questions); err != nil {
		log.WithError(err).Error("Erro ao criar quiz com perguntas")
		return nil, err
	}

	log.Info("Quiz criado com sucesso", "quiz_id", q.ID.String())
	return q, nil
}

func (s *quizService) Update(ctx context.Context, quizID uuid.UUID, dto UpdateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)
	log.Info("Atualizando quiz...", "quiz_id", quizID.String())

	q, err := s.repo.GetByID(quizID)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar quiz")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	if dto.Title != nil {
		q.Title = *dto.Title
	}
	if dto.Description != nil {
		q.Description = *dto.Description
	}
	if dto.Status != nil {
		if !dto.Status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *dto.Status)
		}
		q.Status = *dto.Status
	}
	if dto.StartTime != nil {
		q.StartTime = dto.StartTime
	}
	if dto.EndTime != nil {
		q.EndTime = dto.EndTime
	}
	if dto.DurationMinutes != nil {
		q.DurationMinutes = dto.DurationMinutes
	}

	var replacement []*QuizQuestion
	if dto.Questions != nil {
		for _, input := range *dto.Questions {
			if err := validate.Struct(input); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
		}
		if replacement, err = buildQuestions(*dto.Questions); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(q); err != nil {
		log.WithError(err).Error("Erro ao atualizar quiz")
		return nil, err
	}

	if dto.Questions != nil {
		if err := s.repo.ReplaceQuestions(quizID, replacement); err != nil {
			log.WithError(err).Error("Erro ao substituir perguntas do quiz")
			return nil, err
		}
		q.Questions = nil
	}

	log.Info("Quiz atualizado com sucesso", "quiz_id", quizID.String())
	return q, nil
}

func (s *quizService) Delete(ctx context.Context, quizID uuid.UUID) error {
	log := config.WithContext(ctx)
	log.Info("Deletando quiz...")

	affected, err := s.repo.Delete(quizID)
	if err != nil {
		log.WithError(err).Error("Erro ao deletar quiz")
		return err
	}
	if affected == 0 {
		return ErrQuizNotFound
	}

	log.Info("Quiz deletado com sucesso")
	return nil
}

func (s *quizService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]QuizSummary, error) {
	log := config.WithContext(ctx)

	quizzes, err := s.repo.ListByCourse(courseID)
	if err != nil {
		log.WithError(err).Error("Erro ao listar quizzes do curso")
		return nil, err
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summary := QuizSummary{Quiz: q}

		// Counts are advisory: a failed aggregate degrades to zero
		// instead of failing the listing.
		if n, err := s.repo.CountQuestions(q.ID); err != nil {
			log.WithError(err).Warnf("Falha ao contar perguntas do quiz %s", q.ID)
		} else {
			summary.QuestionCount = n
		}
		if n, err := s.repo.CountAttempts(q.ID); err != nil {
			log.WithError(err).Warnf("Falha ao contar tentativas do quiz %s", q.ID)
		} else {
			summary.AttemptCount = n
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *quizService) ListActive(ctx context.Context, courseID, userID *uuid.UUID) ([]ActiveQuizView, error) {
	log := config.WithContext(ctx)

	var courseIDs []uuid.UUID
	if courseID != nil {
		courseIDs = []uuid.UUID{*courseID}
	} else if userID != nil {
		courses, err := s.courseRepo.ListByUser(*userID)
		if err != nil {
			log.WithError(err).Error("Erro ao resolver cursos do usuário")
			return nil, err
		}
		if len(courses) == 0 {
			return []ActiveQuizView{}, nil
		}
		for _, c := range courses {
			courseIDs = append(courseIDs, c.ID)
		}
	}

	now := time.Now()
	quizzes, err := s.repo.ListActive(courseIDs, now)
	if err != nil {
		log.WithError(err).Error("Erro ao listar quizzes ativos")
		return nil, err
	}

	// The repository filters the window in SQL; re-check here so the
	// listing rule holds regardless of the storage backend.
	open := make([]*Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if q.WindowOpen(now) {
			open = append(open, q)
		}
	}
	quizzes = open

	views := make([]ActiveQuizView, 0, len(quizzes))

	if userID == nil {
		for _, q := range quizzes {
			views = append(views, ActiveQuizView{Quiz: q})
		}
		return views, nil
	}

	quizIDs := make([]uuid.UUID, 0, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
	}

	statuses, err := s.attempts.StatusByQuiz(*userID, quizIDs)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar status de tentativas")
		return nil, err
	}

	for _, q := range quizzes {
		status, attempted := statuses[q.ID]
		// A completed quiz never reappears in the active list.
		if status == "COMPLETED" {
			continue
		}
		views = append(views, ActiveQuizView{
			Quiz:          q,
			HasAttempted:  attempted,
			AttemptStatus: status,
		})
	}

	return views, nil
}

func (s *quizService) Get(ctx context.Context, quizID uuid.UUID, userID *uuid.UUID) (*QuizDetail, error) {
	log := config.WithContext(ctx)
	log.Info("Buscando quiz com perguntas...", "quiz_id", quizID.String())

	q, err := s.repo.GetByID(quizID)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar quiz")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	revealAnswers := false
	if userID != nil {
		completed, err := s.attempts.HasCompleted(quizID, *userID)
		if err != nil {
			log.WithError(err).Error("Erro ao verificar tentativa concluída")
			return nil, err
		}
		revealAnswers = completed
	}

	detail := &QuizDetail{
		ID:              q.ID,
		Title:           q.Title,
		Description:     q.Description,
		Status:          q.Status,
		CourseID:        q.CourseID,
		CreatorID:       q.CreatorID,
		StartTime:       q.StartTime,
		EndTime:         q.EndTime,
		DurationMinutes: q.DurationMinutes,
		CreatedAt:       q.CreatedAt,
		Questions:       make([]QuestionView, 0, len(q.Questions)),
	}

	for i := range q.Questions {
		question := &q.Questions[i]
		view := QuestionView{
			ID:         question.ID,
			Question:   question.Question,
			Options:    question.OptionList(),
			Points:     question.Points,
			OrderIndex: question.OrderIndex,
		}
		if revealAnswers {
			correct := question.CorrectAnswer
			view.CorrectAnswer = &correct
		}
		detail.Questions = append(detail.Questions, view)
	}

	return detail, nil
}

func buildQuestions(inputs []QuestionInput) ([]*QuizQuestion, error) {
	questions := make([]*QuizQuestion, 0, len(inputs))
	for i, input := range inputs {
		if input.CorrectAnswer < 0 || input.CorrectAnswer >= len(input.Options) {
			return nil, fmt.Errorf("%w: correct_answer out of range for question %d", ErrValidation, i)
		}
		points := input.Points
		if points <= 0 {
			points = 1
		}
		questions = append(questions, &QuizQuestion{
			ID:            uuid.New(),
			Question:      input.Question,
			Options:       OptionsJSON(input.Options),
			CorrectAnswer: input.CorrectAnswer,
			Points:        points,
			OrderIndex:    i,
		})
	}
	return questions, nil
}
