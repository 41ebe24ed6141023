package attempt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
	"github.com/Peyu5h/edusynck-sub000/internal/quiz"
)

var validate = validator.New()

type Handler struct {
	service AttemptService
}

func NewHandler(s AttemptService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID, err := uuid.Parse(chi.URLParam(r, "quizID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid quiz id")
		return
	}

	var dto StartAttemptDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(dto); err != nil {
		config.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	a, err := h.service.Start(r.Context(), quizID, dto.UserID)
	if err != nil {
		respondAttemptError(w, log, err)
		return
	}

	config.JSON(w, http.StatusCreated, a)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	attemptID, ok := parseAttemptID(w, r)
	if !ok {
		return
	}

	a, err := h.service.Get(r.Context(), attemptID)
	if err != nil {
		respondAttemptError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, a)
}

func (h *Handler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	attemptID, ok := parseAttemptID(w, r)
	if !ok {
		return
	}

	answers, err := h.service.ListAnswers(r.Context(), attemptID)
	if err != nil {
		respondAttemptError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, answers)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	attemptID, ok := parseAttemptID(w, r)
	if !ok {
		return
	}

	var dto SubmitAnswerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(dto); err != nil {
		config.Error(w, http.StatusBadRequest, "questionId and selectedOption are required")
		return
	}

	ans, err := h.service.SubmitAnswer(r.Context(), attemptID, dto)
	if err != nil {
		respondAttemptError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, ans)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	attemptID, ok := parseAttemptID(w, r)
	if !ok {
		return
	}

	a, err := h.service.Complete(r.Context(), attemptID)
	if err != nil {
		respondAttemptError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, a)
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	attemptID, ok := parseAttemptID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Results(r.Context(), attemptID)
	if err != nil {
		respondAttemptError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID, err := uuid.Parse(chi.URLParam(r, "quizID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid quiz id")
		return
	}

	entries, err := h.service.Leaderboard(r.Context(), quizID)
	if err != nil {
		respondAttemptError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, entries)
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID, err := uuid.Parse(chi.URLParam(r, "quizID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid quiz id")
		return
	}

	view, err := h.service.Progress(r.Context(), quizID)
	if err != nil {
		respondAttemptError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	attempts, err := h.service.ListByStudent(r.Context(), userID)
	if err != nil {
		respondAttemptError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, attempts)
}

func parseAttemptID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	attemptID, err := uuid.Parse(chi.URLParam(r, "attemptID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid attempt id")
		return uuid.Nil, false
	}
	return attemptID, true
}

func respondAttemptError(w http.ResponseWriter, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound):
		config.Error(w, http.StatusNotFound, "quiz not found")
	case errors.Is(err, ErrAttemptNotFound):
		config.Error(w, http.StatusNotFound, "attempt not found")
	case errors.Is(err, ErrQuestionNotFound):
		config.Error(w, http.StatusNotFound, "question not found")
	case errors.Is(err, ErrAlreadyCompleted):
		config.Error(w, http.StatusBadRequest, "quiz already completed")
	case errors.Is(err, ErrNotEligible):
		config.Error(w, http.StatusBadRequest, "quiz is not open for attempts")
	case errors.Is(err, ErrAttemptFinished):
		config.Error(w, http.StatusBadRequest, "attempt is already completed")
	case errors.Is(err, ErrNotCompleted):
		config.Error(w, http.StatusBadRequest, "attempt is not completed yet")
	case errors.Is(err, ErrTimeExpired):
		config.Error(w, http.StatusBadRequest, "attempt time has expired")
	case errors.Is(err, ErrInvalidOption):
		config.Error(w, http.StatusBadRequest, "selected option is out of range")
	default:
		log.WithError(err).Error("Attempt operation failed")
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
