package attempt

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
	"github.com/Peyu5h/edusynck-sub000/internal/course"
	"github.com/Peyu5h/edusynck-sub000/internal/quiz"
	util "github.com/Peyu5h/edusynck-sub000/internal/utils"
)

var (
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotEligible      = errors.New("quiz is not open for attempts")
	ErrAlreadyCompleted = errors.New("quiz already completed by this user")
	ErrAttemptFinished  = errors.New("attempt is already completed")
	ErrNotCompleted     = errors.New("attempt is not completed yet")
	ErrTimeExpired      = errors.New("attempt time has expired")
	ErrInvalidOption    = errors.New("selected option is out of range")
)

// completionGrace absorbs client clock skew and network latency before a
// late answer is rejected outright.
const completionGrace = 30 * time.Second

type AttemptService interface {
	Start(ctx context.Context, quizID, userID uuid.UUID) (*StudentQuizAttempt, error)
	SubmitAnswer(ctx context.Context, attemptID uuid.UUID, dto SubmitAnswerDTO) (*StudentQuestionAnswer, error)
	Complete(ctx context.Context, attemptID uuid.UUID) (*StudentQuizAttempt, error)
	Get(ctx context.Context, attemptID uuid.UUID) (*StudentQuizAttempt, error)
	ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]*StudentQuestionAnswer, error)
	Results(ctx context.Context, attemptID uuid.UUID) (*AttemptResult, error)
	Leaderboard(ctx context.Context, quizID uuid.UUID) ([]LeaderboardEntry, error)
	Progress(ctx context.Context, quizID uuid.UUID) (*ProgressView, error)
	ListByStudent(ctx context.Context, userID uuid.UUID) ([]*StudentQuizAttempt, error)
}

type attemptService struct {
	repo       AttemptRepository
	quizRepo   quiz.QuizRepository
	courseRepo course.CourseRepository
	now        func() time.Time
}

func NewService(repo AttemptRepository, quizRepo quiz.QuizRepository, courseRepo course.CourseRepository) AttemptService {
	return &attemptService{
		repo:       repo,
		quizRepo:   quizRepo,
		courseRepo: courseRepo,
		now:        time.Now,
	}
}

func (s *attemptService) Start(ctx context.Context, quizID, userID uuid.UUID) (*StudentQuizAttempt, error) {
	log := config.WithContext(ctx)

	q, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz for attempt start")
		return nil, err
	}
	if q == nil {
		return nil, quiz.ErrQuizNotFound
	}

	existing, err := s.repo.FindByQuizAndUser(quizID, userID)
	if err != nil {
		log.WithError(err).Error("Failed to look up existing attempt")
		return nil, err
	}
	if existing != nil {
		return s.resumeOrReject(log, existing)
	}

	if err := s.checkEligibility(q); err != nil {
		return nil, err
	}

	a := &StudentQuizAttempt{
		ID:        uuid.New(),
		QuizID:    quizID,
		UserID:    userID,
		Status:    StatusInProgress,
		StartedAt: s.now(),
	}

	if err := s.repo.Create(a); err != nil {
		// Concurrent double-start: the unique index turned the race into
		// a conflict, resolve it by returning the row that won.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, ferr := s.repo.FindByQuizAndUser(quizID, userID)
			if ferr != nil {
				return nil, ferr
			}
			if winner != nil {
				return s.resumeOrReject(log, winner)
			}
		}
		log.WithError(err).Error("Failed to create attempt")
		return nil, err
	}

	log.WithField("attempt_id", a.ID).Info("Attempt started")
	return a, nil
}

func (s *attemptService) resumeOrReject(log *logrus.Entry, existing *StudentQuizAttempt) (*StudentQuizAttempt, error) {
	if existing.Status == StatusCompleted {
		return nil, ErrAlreadyCompleted
	}
	log.Info("Resuming in-progress attempt")
	return existing, nil
}

func (s *attemptService) checkEligibility(q *quiz.Quiz) error {
	if q.Status != quiz.StatusActive {
		return ErrNotEligible
	}
	if !q.WindowOpen(s.now()) {
		return ErrNotEligible
	}
	return nil
}

func (s *attemptService) SubmitAnswer(ctx context.Context, attemptID uuid.UUID, dto SubmitAnswerDTO) (*StudentQuestionAnswer, error) {
	log := config.WithContext(ctx)

	a, err := s.repo.FindByID(attemptID)
	if err != nil {
		log.WithError(err).Error("Failed to load attempt")
		return nil, err
	}
	if a == nil {
		return nil, ErrAttemptNotFound
	}
	if a.Status != StatusInProgress {
		return nil, ErrAttemptFinished
	}

	question, err := s.quizRepo.GetQuestion(dto.QuestionID)
	if err != nil {
		log.WithError(err).Error("Failed to load question")
		return nil, err
	}
	if question == nil || question.QuizID != a.QuizID {
		return nil, ErrQuestionNotFound
	}

	q, err := s.quizRepo.GetByID(a.QuizID)
	if err != nil {
		return nil, err
	}
	if q != nil {
		if deadline := util.Deadline(a.StartedAt, q.DurationMinutes); deadline != nil && s.now().After(deadline.Add(completionGrace)) {
			return nil, ErrTimeExpired
		}
	}

	options := question.OptionList()
	if dto.SelectedOption < 0 || dto.SelectedOption >= len(options) {
		return nil, ErrInvalidOption
	}

	ans := &StudentQuestionAnswer{
		ID:             uuid.New(),
		AttemptID:      a.ID,
		QuestionID:     question.ID,
		SelectedOption: dto.SelectedOption,
		IsCorrect:      dto.SelectedOption == question.CorrectAnswer,
		AnsweredAt:     s.now(),
	}

	if err := s.repo.UpsertAnswer(ans); err != nil {
		log.WithError(err).Error("Failed to upsert answer")
		return nil, err
	}

	return ans, nil
}

func (s *attemptService) Complete(ctx context.Context, attemptID uuid.UUID) (*StudentQuizAttempt, error) {
	log := config.WithContext(ctx)

	a, err := s.repo.FindByID(attemptID)
	if err != nil {
		log.WithError(err).Error("Failed to load attempt")
		return nil, err
	}
	if a == nil {
		return nil, ErrAttemptNotFound
	}
	if a.Status != StatusInProgress {
		return nil, ErrAttemptFinished
	}

	q, err := s.quizRepo.GetByID(a.QuizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz for scoring")
		return nil, err
	}
	if q == nil {
		return nil, quiz.ErrQuizNotFound
	}

	answers, err := s.repo.ListAnswers(a.ID)
	if err != nil {
		log.WithError(err).Error("Failed to load answers for scoring")
		return nil, err
	}

	// Late completions are accepted, but only answers recorded before the
	// server-derived deadline count towards the score.
	deadline := util.Deadline(a.StartedAt, q.DurationMinutes)
	score := computeScore(q.Questions, answers, deadline)

	now := s.now()
	a.Status = StatusCompleted
	a.CompletedAt = &now
	a.Score = score

	affected, err := s.repo.Complete(a)
	if err != nil {
		log.WithError(err).Error("Failed to persist completed attempt")
		return nil, err
	}
	if affected == 0 {
		// A concurrent completion won; the stored row already holds its
		// score and timestamp.
		return nil, ErrAttemptFinished
	}

	log.WithField("attempt_id", a.ID).Infof("Attempt completed with score %d", score)
	return a, nil
}

func (s *attemptService) Get(ctx context.Context, attemptID uuid.UUID) (*StudentQuizAttempt, error) {
	a, err := s.repo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAttemptNotFound
	}
	return a, nil
}

func (s *attemptService) ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]*StudentQuestionAnswer, error) {
	a, err := s.repo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAttemptNotFound
	}
	return s.repo.ListAnswers(attemptID)
}

func (s *attemptService) Results(ctx context.Context, attemptID uuid.UUID) (*AttemptResult, error) {
	log := config.WithContext(ctx)

	a, err := s.repo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAttemptNotFound
	}
	if a.Status != StatusCompleted {
		return nil, ErrNotCompleted
	}

	questions, err := s.quizRepo.ListQuestionsByQuiz(a.QuizID)
	if err != nil {
		log.WithError(err).Error("Failed to load questions for results")
		return nil, err
	}
	answers, err := s.repo.ListAnswers(a.ID)
	if err != nil {
		log.WithError(err).Error("Failed to load answers for results")
		return nil, err
	}

	byQuestion := make(map[uuid.UUID]*StudentQuestionAnswer, len(answers))
	for _, ans := range answers {
		byQuestion[ans.QuestionID] = ans
	}

	result := &AttemptResult{
		Attempt:   a,
		Questions: make([]QuestionResult, 0, len(questions)),
	}
	for _, question := range questions {
		qr := QuestionResult{
			QuestionID:    question.ID,
			Question:      question.Question,
			Options:       question.OptionList(),
			CorrectAnswer: question.CorrectAnswer,
			Points:        question.Points,
		}
		if ans, ok := byQuestion[question.ID]; ok {
			selected := ans.SelectedOption
			qr.SelectedOption = &selected
			qr.IsCorrect = ans.IsCorrect
		}
		result.Total += question.Points
		result.Questions = append(result.Questions, qr)
	}

	return result, nil
}

func (s *attemptService) ListByStudent(ctx context.Context, userID uuid.UUID) ([]*StudentQuizAttempt, error) {
	log := config.WithContext(ctx)

	attempts, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list attempts for student")
		return nil, err
	}
	return attempts, nil
}
