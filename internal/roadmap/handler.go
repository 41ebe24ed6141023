package roadmap

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

type Handler struct {
	service RoadmapService
}

func NewHandler(s RoadmapService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto GenerateRoadmapDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	roadmap, err := h.service.Generate(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			config.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrGeneration):
			log.WithError(err).Error("roadmap generation failed")
			config.Error(w, http.StatusBadGateway, "roadmap generation failed")
		default:
			log.WithError(err).Error("failed to generate roadmap")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, roadmap)
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	roadmaps, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("failed to list roadmaps")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, roadmaps)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "roadmapID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid roadmap id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrRoadmapNotFound) {
			config.Error(w, http.StatusNotFound, "roadmap not found")
			return
		}
		log.WithError(err).Error("failed to delete roadmap")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
