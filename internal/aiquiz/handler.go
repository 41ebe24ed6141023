package aiquiz

import (
	"encoding/json"
	"net/http"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions, err := h.service.GenerateQuestions(r.Context(), req)
	if err != nil {
		log.WithError(err).Errorf("Failed to generate questions: %v", err)
		config.Error(w, http.StatusInternalServerError, "failed to generate questions")
		return
	}

	config.JSON(w, http.StatusCreated, questions)
}
