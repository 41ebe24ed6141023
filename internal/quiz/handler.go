package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Peyu5h/edusynck-sub000/internal/aiquiz"
	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para criar quiz")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.service.Create(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation), errors.Is(err, ErrNoQuestions):
			config.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, aiquiz.ErrGeneration):
			log.WithError(err).Error("Erro ao gerar perguntas para o quiz")
			config.Error(w, http.StatusInternalServerError, "question generation failed")
		default:
			log.WithError(err).Error("Erro ao criar quiz com perguntas")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID, ok := parseQuizID(w, r)
	if !ok {
		return
	}

	var dto UpdateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para atualizar quiz")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.service.Update(r.Context(), quizID, dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuizNotFound):
			config.Error(w, http.StatusNotFound, "quiz not found")
		case errors.Is(err, ErrValidation):
			config.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.WithError(err).Error("Erro ao atualizar quiz")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID, ok := parseQuizID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), quizID); err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			config.Error(w, http.StatusNotFound, "quiz not found")
			return
		}
		log.WithError(err).Error("Erro ao deletar quiz")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "quiz deleted successfully",
	})
}

func (h *Handler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	courseID, err := uuid.Parse(chi.URLParam(r, "courseID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid course id")
		return
	}

	summaries, err := h.service.ListByCourse(r.Context(), courseID)
	if err != nil {
		log.WithError(err).Error("Erro ao listar quizzes do curso")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, summaries)
}

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var courseID, userID *uuid.UUID

	if raw := r.URL.Query().Get("courseId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			config.Error(w, http.StatusBadRequest, "invalid courseId")
			return
		}
		courseID = &id
	}
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			config.Error(w, http.StatusBadRequest, "invalid userId")
			return
		}
		userID = &id
	}

	views, err := h.service.ListActive(r.Context(), courseID, userID)
	if err != nil {
		log.WithError(err).Error("Erro ao listar quizzes ativos")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, views)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID, ok := parseQuizID(w, r)
	if !ok {
		return
	}

	var userID *uuid.UUID
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			config.Error(w, http.StatusBadRequest, "invalid userId")
			return
		}
		userID = &id
	}

	detail, err := h.service.Get(r.Context(), quizID, userID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			config.Error(w, http.StatusNotFound, "quiz not found")
			return
		}
		log.WithError(err).Error("Erro ao buscar quiz com perguntas")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, detail)
}

func parseQuizID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	quizID, err := uuid.Parse(chi.URLParam(r, "quizID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid quiz id")
		return uuid.Nil, false
	}
	return quizID, true
}
