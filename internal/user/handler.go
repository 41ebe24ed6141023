package user

import (
	"encoding/json"
	"net/http"

	"github.com/Peyu5h/edusynck-sub000/internal/auth"
	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Code == "" {
		config.Error(w, http.StatusBadRequest, "authorization code required")
		return
	}

	result, err := h.service.GoogleLogin(r.Context(), payload.Code)
	if err != nil {
		log.WithError(err).Error("Erro no login com Google")
		config.Error(w, http.StatusUnauthorized, "google login failed")
		return
	}

	setJWTCookie(w, result.AccessToken)
	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.RefreshToken == "" {
		config.Error(w, http.StatusBadRequest, "refresh token required")
		return
	}

	result, err := h.service.Refresh(r.Context(), payload.RefreshToken)
	if err != nil {
		log.WithError(err).Warn("Falha ao renovar token")
		config.Error(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	setJWTCookie(w, result.AccessToken)
	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.service.GetByID(r.Context(), claims.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load current user")
		config.Error(w, http.StatusNotFound, "user not found")
		return
	}

	config.JSON(w, http.StatusOK, u)
}

func setJWTCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Path:     "/",
		MaxAge:   int(accessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
