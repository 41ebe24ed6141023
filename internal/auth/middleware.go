package auth

import (
	"net/http"
	"strings"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

// AuthMiddleware accepts the jwt cookie set on login or a bearer token.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := ""

		if cookie, err := r.Cookie("jwt"); err == nil {
			tokenStr = cookie.Value
		}
		if tokenStr == "" {
			header := r.Header.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				tokenStr = strings.TrimPrefix(header, "Bearer ")
			}
		}

		if tokenStr == "" {
			config.Error(w, http.StatusUnauthorized, "missing credentials")
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log := config.WithContext(r.Context())
			log.WithError(err).Warn("Token inválido")
			config.Error(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserClaims(r.Context(), claims)))
	})
}
