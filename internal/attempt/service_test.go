package attempt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Peyu5h/edusynck-sub000/internal/course"
	"github.com/Peyu5h/edusynck-sub000/internal/quiz"
	"github.com/Peyu5h/edusynck-sub000/internal/user"
)

type fakeAttemptRepo struct {
	attempts map[uuid.UUID]*StudentQuizAttempt
	answers  map[uuid.UUID]map[uuid.UUID]*StudentQuestionAnswer
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{
		attempts: make(map[uuid.UUID]*StudentQuizAttempt),
		answers:  make(map[uuid.UUID]map[uuid.UUID]*StudentQuestionAnswer),
	}
}

func (r *fakeAttemptRepo) Create(a *StudentQuizAttempt) error {
	for _, existing := range r.attempts {
		if existing.QuizID == a.QuizID && existing.UserID == a.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	copied := *a
	r.attempts[a.ID] = &copied
	return nil
}

func (r *fakeAttemptRepo) FindByID(id uuid.UUID) (*StudentQuizAttempt, error) {
	a, ok := r.attempts[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAttemptRepo) FindByQuizAndUser(quizID, userID uuid.UUID) (*StudentQuizAttempt, error) {
	for _, a := range r.attempts {
		if a.QuizID == quizID && a.UserID == userID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAttemptRepo) Complete(a *StudentQuizAttempt) (int64, error) {
	stored, ok := r.attempts[a.ID]
	if !ok || stored.Status != StatusInProgress {
		return 0, nil
	}
	copied := *a
	r.attempts[a.ID] = &copied
	return 1, nil
}

func (r *fakeAttemptRepo) UpsertAnswer(ans *StudentQuestionAnswer) error {
	byQuestion, ok := r.answers[ans.AttemptID]
	if !ok {
		byQuestion = make(map[uuid.UUID]*StudentQuestionAnswer)
		r.answers[ans.AttemptID] = byQuestion
	}
	if existing, ok := byQuestion[ans.QuestionID]; ok {
		existing.SelectedOption = ans.SelectedOption
		existing.IsCorrect = ans.IsCorrect
		existing.AnsweredAt = ans.AnsweredAt
		return nil
	}
	copied := *ans
	byQuestion[ans.QuestionID] = &copied
	return nil
}

func (r *fakeAttemptRepo) ListAnswers(attemptID uuid.UUID) ([]*StudentQuestionAnswer, error) {
	var out []*StudentQuestionAnswer
	for _, ans := range r.answers[attemptID] {
		copied := *ans
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeAttemptRepo) ListByQuiz(quizID uuid.UUID) ([]*StudentQuizAttempt, error) {
	var out []*StudentQuizAttempt
	for _, a := range r.attempts {
		if a.QuizID == quizID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) ListCompletedByQuiz(quizID uuid.UUID) ([]*StudentQuizAttempt, error) {
	var out []*StudentQuizAttempt
	for _, a := range r.attempts {
		if a.QuizID == quizID && a.Status == StatusCompleted {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) ListByUser(userID uuid.UUID) ([]*StudentQuizAttempt, error) {
	var out []*StudentQuizAttempt
	for _, a := range r.attempts {
		if a.UserID == userID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) StatusByQuiz(userID uuid.UUID, quizIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	statuses := make(map[uuid.UUID]string)
	for _, a := range r.attempts {
		if a.UserID != userID {
			continue
		}
		for _, id := range quizIDs {
			if a.QuizID == id {
				statuses[id] = string(a.Status)
			}
		}
	}
	return statuses, nil
}

func (r *fakeAttemptRepo) HasCompleted(quizID, userID uuid.UUID) (bool, error) {
	for _, a := range r.attempts {
		if a.QuizID == quizID && a.UserID == userID && a.Status == StatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

type fakeQuizRepo struct {
	quiz.QuizRepository
	quizzes map[uuid.UUID]*quiz.Quiz
}

func newFakeQuizRepo(quizzes ...*quiz.Quiz) *fakeQuizRepo {
	r := &fakeQuizRepo{quizzes: make(map[uuid.UUID]*quiz.Quiz)}
	for _, q := range quizzes {
		r.quizzes[q.ID] = q
	}
	return r
}

func (r *fakeQuizRepo) GetByID(id uuid.UUID) (*quiz.Quiz, error) {
	return r.quizzes[id], nil
}

func (r *fakeQuizRepo) GetQuestion(id uuid.UUID) (*quiz.QuizQuestion, error) {
	for _, q := range r.quizzes {
		for i := range q.Questions {
			if q.Questions[i].ID == id {
				return &q.Questions[i], nil
			}
		}
	}
	return nil, nil
}

func (r *fakeQuizRepo) ListQuestionsByQuiz(quizID uuid.UUID) ([]*quiz.QuizQuestion, error) {
	q, ok := r.quizzes[quizID]
	if !ok {
		return nil, nil
	}
	out := make([]*quiz.QuizQuestion, 0, len(q.Questions))
	for i := range q.Questions {
		out = append(out, &q.Questions[i])
	}
	return out, nil
}

type fakeCourseRepo struct {
	students map[uuid.UUID][]*user.User
}

func (r *fakeCourseRepo) UpsertByGoogleID(c *course.Course) error { return nil }
func (r *fakeCourseRepo) Enroll(courseID, userID uuid.UUID) error { return nil }
func (r *fakeCourseRepo) FindByID(id uuid.UUID) (*course.Course, error) {
	return nil, nil
}
func (r *fakeCourseRepo) ListByUser(userID uuid.UUID) ([]*course.Course, error) {
	return nil, nil
}
func (r *fakeCourseRepo) ListStudents(courseID uuid.UUID) ([]*user.User, error) {
	return r.students[courseID], nil
}

// staleReadRepo returns attempts frozen in IN_PROGRESS, simulating two
// callers that both read the row before either write lands.
type staleReadRepo struct {
	*fakeAttemptRepo
}

func (r *staleReadRepo) FindByID(id uuid.UUID) (*StudentQuizAttempt, error) {
	a, err := r.fakeAttemptRepo.FindByID(id)
	if a != nil {
		a.Status = StatusInProgress
	}
	return a, err
}

func newTestService(repo AttemptRepository, quizRepo *fakeQuizRepo, courseRepo *fakeCourseRepo, now time.Time) *attemptService {
	if courseRepo == nil {
		courseRepo = &fakeCourseRepo{}
	}
	return &attemptService{
		repo:       repo,
		quizRepo:   quizRepo,
		courseRepo: courseRepo,
		now:        func() time.Time { return now },
	}
}

func minutes(n int) *int { return &n }

func activeQuiz(courseID uuid.UUID) *quiz.Quiz {
	quizID := uuid.New()
	return &quiz.Quiz{
		ID:       quizID,
		Title:    "Revisão de Estruturas de Dados",
		Status:   quiz.StatusActive,
		CourseID: courseID,
		Questions: []quiz.QuizQuestion{
			{
				ID:            uuid.New(),
				QuizID:        quizID,
				Question:      "Qual a complexidade da busca binária?",
				Options:       quiz.OptionsJSON([]string{"O(n)", "O(log n)", "O(1)", "O(n log n)"}),
				CorrectAnswer: 1,
				Points:        2,
				OrderIndex:    0,
			},
			{
				ID:            uuid.New(),
				QuizID:        quizID,
				Question:      "Qual estrutura usa LIFO?",
				Options:       quiz.OptionsJSON([]string{"Fila", "Pilha", "Árvore", "Grafo"}),
				CorrectAnswer: 1,
				Points:        3,
				OrderIndex:    1,
			},
		},
	}
}

func TestStart(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("CreatesAttempt", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		svc := newTestService(newFakeAttemptRepo(), newFakeQuizRepo(q), nil, now)

		a, err := svc.Start(context.Background(), q.ID, userID)
		if err != nil {
			t.Fatalf("Start falhou: %v", err)
		}
		if a.Status != StatusInProgress {
			t.Errorf("Status incorreto. Esperado: %s, Recebido: %s", StatusInProgress, a.Status)
		}
		if !a.StartedAt.Equal(now) {
			t.Errorf("StartedAt deveria ser o relógio do servidor, recebido: %v", a.StartedAt)
		}
	})

	t.Run("IdempotentWhileInProgress", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		first, err := svc.Start(context.Background(), q.ID, userID)
		if err != nil {
			t.Fatalf("Start falhou: %v", err)
		}
		second, err := svc.Start(context.Background(), q.ID, userID)
		if err != nil {
			t.Fatalf("Segundo Start falhou: %v", err)
		}
		if first.ID != second.ID {
			t.Errorf("Segundo Start deveria retomar a mesma tentativa. Esperado: %s, Recebido: %s", first.ID, second.ID)
		}
		if len(repo.attempts) != 1 {
			t.Errorf("Esperada uma única tentativa persistida, recebidas: %d", len(repo.attempts))
		}
	})

	t.Run("RejectsAfterCompletion", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)
		if _, err := svc.Complete(context.Background(), a.ID); err != nil {
			t.Fatalf("Complete falhou: %v", err)
		}

		if _, err := svc.Start(context.Background(), q.ID, userID); !errors.Is(err, ErrAlreadyCompleted) {
			t.Errorf("Esperado ErrAlreadyCompleted, recebido: %v", err)
		}
	})

	t.Run("RejectsDraftQuiz", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		q.Status = quiz.StatusDraft
		svc := newTestService(newFakeAttemptRepo(), newFakeQuizRepo(q), nil, now)

		if _, err := svc.Start(context.Background(), q.ID, userID); !errors.Is(err, ErrNotEligible) {
			t.Errorf("Esperado ErrNotEligible, recebido: %v", err)
		}
	})

	t.Run("RejectsOutsideWindow", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		ended := now.Add(-time.Hour)
		q.EndTime = &ended
		svc := newTestService(newFakeAttemptRepo(), newFakeQuizRepo(q), nil, now)

		if _, err := svc.Start(context.Background(), q.ID, userID); !errors.Is(err, ErrNotEligible) {
			t.Errorf("Esperado ErrNotEligible para quiz encerrado, recebido: %v", err)
		}
	})

	t.Run("UnknownQuiz", func(t *testing.T) {
		svc := newTestService(newFakeAttemptRepo(), newFakeQuizRepo(), nil, now)

		if _, err := svc.Start(context.Background(), uuid.New(), userID); !errors.Is(err, quiz.ErrQuizNotFound) {
			t.Errorf("Esperado ErrQuizNotFound, recebido: %v", err)
		}
	})
}

func TestSubmitAnswer(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("RecordsCorrectness", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)

		ans, err := svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{
			QuestionID:     q.Questions[0].ID,
			SelectedOption: 1,
		})
		if err != nil {
			t.Fatalf("SubmitAnswer falhou: %v", err)
		}
		if !ans.IsCorrect {
			t.Error("Resposta na opção correta deveria ser marcada como correta")
		}
	})

	t.Run("ResubmissionOverwrites", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)
		questionID := q.Questions[0].ID

		if _, err := svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: questionID, SelectedOption: 1}); err != nil {
			t.Fatalf("SubmitAnswer falhou: %v", err)
		}
		if _, err := svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: questionID, SelectedOption: 0}); err != nil {
			t.Fatalf("Reenvio falhou: %v", err)
		}

		answers, _ := repo.ListAnswers(a.ID)
		if len(answers) != 1 {
			t.Fatalf("Reenvio deveria atualizar a linha existente, recebidas %d linhas", len(answers))
		}
		if answers[0].SelectedOption != 0 || answers[0].IsCorrect {
			t.Errorf("Última escrita deveria vencer: opção %d, correta %v", answers[0].SelectedOption, answers[0].IsCorrect)
		}
	})

	t.Run("RejectsForeignQuestion", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		other := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q, other), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)

		if _, err := svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: other.Questions[0].ID, SelectedOption: 0}); !errors.Is(err, ErrQuestionNotFound) {
			t.Errorf("Esperado ErrQuestionNotFound para questão de outro quiz, recebido: %v", err)
		}
	})

	t.Run("RejectsOptionOutOfRange", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)

		if _, err := svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: q.Questions[0].ID, SelectedOption: 4}); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("Esperado ErrInvalidOption, recebido: %v", err)
		}
	})

	t.Run("RejectsAfterDeadline", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		q.DurationMinutes = minutes(10)
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)

		// Past the deadline plus the grace window.
		svc.now = func() time.Time { return now.Add(11 * time.Minute) }

		if _, err := svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: q.Questions[0].ID, SelectedOption: 1}); !errors.Is(err, ErrTimeExpired) {
			t.Errorf("Esperado ErrTimeExpired, recebido: %v", err)
		}
	})

	t.Run("RejectsCompletedAttempt", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)
		if _, err := svc.Complete(context.Background(), a.ID); err != nil {
			t.Fatalf("Complete falhou: %v", err)
		}

		if _, err := svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: q.Questions[0].ID, SelectedOption: 1}); !errors.Is(err, ErrAttemptFinished) {
			t.Errorf("Esperado ErrAttemptFinished, recebido: %v", err)
		}
	})
}

func TestComplete(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("SumsCorrectPoints", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)
		svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: q.Questions[0].ID, SelectedOption: 1}) // correta, 2 pontos
		svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: q.Questions[1].ID, SelectedOption: 0}) // incorreta

		done, err := svc.Complete(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("Complete falhou: %v", err)
		}
		if done.Score != 2 {
			t.Errorf("Score incorreto. Esperado: 2, Recebido: %d", done.Score)
		}
		if done.Status != StatusCompleted {
			t.Errorf("Status incorreto. Esperado: %s, Recebido: %s", StatusCompleted, done.Status)
		}
		if done.CompletedAt == nil || !done.CompletedAt.Equal(now) {
			t.Errorf("CompletedAt deveria ser o relógio do servidor, recebido: %v", done.CompletedAt)
		}
	})

	t.Run("UnansweredScoresZero", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)

		done, err := svc.Complete(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("Complete falhou: %v", err)
		}
		if done.Score != 0 {
			t.Errorf("Tentativa sem respostas deveria pontuar 0, recebido: %d", done.Score)
		}
	})

	t.Run("DoubleCompleteFails", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)
		svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: q.Questions[0].ID, SelectedOption: 1})

		first, err := svc.Complete(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("Complete falhou: %v", err)
		}
		if _, err := svc.Complete(context.Background(), a.ID); !errors.Is(err, ErrAttemptFinished) {
			t.Errorf("Segundo Complete deveria falhar com ErrAttemptFinished, recebido: %v", err)
		}

		stored, _ := repo.FindByID(a.ID)
		if stored.Score != first.Score || !stored.CompletedAt.Equal(*first.CompletedAt) {
			t.Error("Segundo Complete não deveria alterar score nem completed_at")
		}
	})

	t.Run("RacingCompletionsHaveOneWinner", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		repo := newFakeAttemptRepo()
		// Serves stale reads: both completions see IN_PROGRESS, so only
		// the status predicate on the write can decide the winner.
		stale := &staleReadRepo{fakeAttemptRepo: repo}
		svc := newTestService(stale, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)
		svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: q.Questions[0].ID, SelectedOption: 1})

		first, err := svc.Complete(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("Complete falhou: %v", err)
		}
		if _, err := svc.Complete(context.Background(), a.ID); !errors.Is(err, ErrAttemptFinished) {
			t.Errorf("Conclusão perdedora deveria falhar com ErrAttemptFinished, recebido: %v", err)
		}

		stored, _ := repo.FindByID(a.ID)
		if stored.Score != first.Score || !stored.CompletedAt.Equal(*first.CompletedAt) {
			t.Error("Conclusão perdedora não deveria sobrescrever a vencedora")
		}
	})

	t.Run("LateCompletionClampsScore", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		q.DurationMinutes = minutes(10)
		repo := newFakeAttemptRepo()
		svc := newTestService(repo, newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)
		svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: q.Questions[0].ID, SelectedOption: 1})

		// Second answer lands inside the grace window but past the deadline.
		svc.now = func() time.Time { return now.Add(10*time.Minute + 15*time.Second) }
		if _, err := svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: q.Questions[1].ID, SelectedOption: 1}); err != nil {
			t.Fatalf("SubmitAnswer dentro da tolerância falhou: %v", err)
		}

		done, err := svc.Complete(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("Complete tardio deveria ser aceito: %v", err)
		}
		if done.Score != 2 {
			t.Errorf("Resposta após o prazo não deveria pontuar. Esperado: 2, Recebido: %d", done.Score)
		}
	})
}

func TestResults(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("RequiresCompletion", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		svc := newTestService(newFakeAttemptRepo(), newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)

		if _, err := svc.Results(context.Background(), a.ID); !errors.Is(err, ErrNotCompleted) {
			t.Errorf("Esperado ErrNotCompleted, recebido: %v", err)
		}
	})

	t.Run("RevealsCorrections", func(t *testing.T) {
		q := activeQuiz(uuid.New())
		svc := newTestService(newFakeAttemptRepo(), newFakeQuizRepo(q), nil, now)

		a, _ := svc.Start(context.Background(), q.ID, userID)
		svc.SubmitAnswer(context.Background(), a.ID, SubmitAnswerDTO{QuestionID: q.Questions[0].ID, SelectedOption: 1})
		if _, err := svc.Complete(context.Background(), a.ID); err != nil {
			t.Fatalf("Complete falhou: %v", err)
		}

		result, err := svc.Results(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("Results falhou: %v", err)
		}
		if result.Total != 5 {
			t.Errorf("Total de pontos incorreto. Esperado: 5, Recebido: %d", result.Total)
		}
		if len(result.Questions) != 2 {
			t.Fatalf("Esperadas 2 questões no resultado, recebidas: %d", len(result.Questions))
		}

		answered := result.Questions[0]
		if answered.SelectedOption == nil || *answered.SelectedOption != 1 || !answered.IsCorrect {
			t.Error("Questão respondida deveria carregar a seleção e a correção")
		}
		unanswered := result.Questions[1]
		if unanswered.SelectedOption != nil {
			t.Error("Questão não respondida não deveria carregar seleção")
		}
	})
}
