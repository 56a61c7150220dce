package auth

import (
	"net/http"

	"github.com/rs/zerolog"

	"impactsTracker/internal/utils"
	"impactsTracker/models"
	"impactsTracker/repository"
)

// Middleware requires a valid Bearer token and injects the Principal into the request context.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}
			p, err := ParseToken(tok, secret)
			if err != nil {
				zerolog.Ctx(r.Context()).Debug().Err(err).Msg("rejected token")
				utils.Error(w, http.StatusUnauthorized, "Token is not valid")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin ensures the caller's token says admin AND that the stored user
// still has role 'admin', so a stale or forged role claim is not enough.
func RequireAdmin(users repository.UserRepositoryI) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromContext(r.Context())
			if !ok {
				utils.Error(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}
			if p.Role != models.RoleAdmin {
				utils.Error(w, http.StatusForbidden, "Access denied. Admin only.")
				return
			}
			u, err := users.GetByID(r.Context(), p.UserID)
			if err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Msg("admin role lookup")
				utils.Error(w, http.StatusInternalServerError, "Server error")
				return
			}
			if !u.IsAdmin() {
				utils.Error(w, http.StatusForbidden, "Access denied. Admin only.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
