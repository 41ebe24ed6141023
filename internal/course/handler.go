package course

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Peyu5h/edusynck-sub000/internal/auth"
	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

type Handler struct {
	service CourseService
}

func NewHandler(s CourseService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListMyCourses(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	courses, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to list courses")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, courses)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "courseID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid course id")
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			config.Error(w, http.StatusNotFound, "course not found")
			return
		}
		log.WithError(err).Error("Failed to get course")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, c)
}
