package youtube

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

type Handler struct {
	service YouTubeService
}

func NewHandler(s YouTubeService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		config.Error(w, http.StatusBadRequest, "topic is required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	videos, err := h.service.Recommend(r.Context(), topic, limit)
	if err != nil {
		if errors.Is(err, ErrMissingAPIKey) {
			config.Error(w, http.StatusServiceUnavailable, "video recommendations are not configured")
			return
		}
		log.WithError(err).Error("Failed to fetch video recommendations")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, videos)
}
