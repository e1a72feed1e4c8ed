package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hagiodex/hagiodex/internal/auth"
)

// RequireSelf returns middleware that only lets the caller act on the
// account named by the URL parameter param. Must be applied after Auth and
// PathID.
func RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			targetID, err := ParseID(chi.URLParam(r, param))
			if err != nil {
				writeError(w, http.StatusBadRequest, CodeInvalidID, "Invalid id")
				return
			}

			err = auth.AuthorizeSelf(auth.AccountFromContext(r.Context()), targetID)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, auth.ErrForbidden):
				writeError(w, http.StatusForbidden, CodeForbidden, "Not enough permissions")
			default:
				writeAuthError(w)
			}
		})
	}
}
