package httpapi

import (
	"net/http"

	"github.com/rs/zerolog"

	"impactsTracker/internal/auth"
	"impactsTracker/internal/utils"
)

func writeFieldErrors(w http.ResponseWriter, errs ...FieldError) {
	utils.JSON(w, http.StatusBadRequest, map[string][]FieldError{"errors": errs})
}

// serverError logs err against the request logger and answers a generic 500.
func serverError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	utils.Error(w, http.StatusInternalServerError, "Server error")
}

// caller returns the authenticated principal, answering 401 when there is none.
func caller(w http.ResponseWriter, r *http.Request) (*auth.Principal, bool) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "No token, authorization denied")
	}
	return p, ok
}
