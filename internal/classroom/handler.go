package classroom

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Peyu5h/edusynck-sub000/internal/auth"
	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

type Handler struct {
	service ClassroomService
}

func NewHandler(s ClassroomService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) SyncCourses(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, ok := claimsUserID(w, r)
	if !ok {
		return
	}

	synced, err := h.service.SyncCourses(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, log, err, "Failed to sync classroom courses")
		return
	}

	config.JSON(w, http.StatusOK, synced)
}

func (h *Handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, ok := claimsUserID(w, r)
	if !ok {
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "courseID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid course id")
		return
	}

	materials, err := h.service.ListMaterials(r.Context(), userID, courseID)
	if err != nil {
		h.respondServiceError(w, log, err, "Failed to list course materials")
		return
	}

	config.JSON(w, http.StatusOK, materials)
}

func (h *Handler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	courseID, err := uuid.Parse(chi.URLParam(r, "courseID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid course id")
		return
	}

	userID, ok := claimsUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ImportRoster(r.Context(), userID, courseID)
	if err != nil {
		h.respondServiceError(w, log, err, "Failed to import roster")
		return
	}

	config.JSON(w, http.StatusOK, result)
}

func claimsUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, log *logrus.Entry, err error, msg string) {
	log.WithError(err).Error(msg)

	switch {
	case errors.Is(err, ErrCourseNotLinked):
		config.Error(w, http.StatusNotFound, "course is not linked to google classroom")
	case errors.Is(err, ErrMissingClassroomToken), errors.Is(err, ErrDecryptionFailed):
		config.Error(w, http.StatusBadRequest, "google classroom is not connected for this account")
	case errors.Is(err, ErrUserNotFound):
		config.Error(w, http.StatusNotFound, "user not found")
	default:
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
