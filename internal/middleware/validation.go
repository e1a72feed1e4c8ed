package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"
)

// MaxLookupKeyLength bounds the {idOrName} path segment.
const MaxLookupKeyLength = 100

// Validation errors.
var (
	ErrIDInvalid        = errors.New("id must be a positive integer")
	ErrLookupKeyEmpty   = errors.New("lookup key is empty")
	ErrLookupKeyTooLong = errors.New("lookup key exceeds maximum length")
	ErrLookupKeyControl = errors.New("lookup key contains control characters")
)

// ParseID parses a positive decimal id. Signs, spaces and leading "+" are
// rejected.
func ParseID(raw string) (int64, error) {
	if raw == "" || raw[0] == '+' || raw[0] == '-' {
		return 0, ErrIDInvalid
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrIDInvalid
	}
	return id, nil
}

// ValidateLookupKey checks an id-or-name path segment before it reaches the
// store.
func ValidateLookupKey(raw string) error {
	key := strings.TrimSpace(raw)
	if key == "" {
		return ErrLookupKeyEmpty
	}
	if len(key) > MaxLookupKeyLength {
		return ErrLookupKeyTooLong
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return ErrLookupKeyControl
		}
	}
	return nil
}

// PathID rejects requests whose URL parameter param is not a positive id.
func PathID(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := ParseID(chi.URLParam(r, param)); err != nil {
				writeError(w, http.StatusBadRequest, CodeInvalidID, "Invalid id")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PathLookupKey rejects requests whose URL parameter param is not a usable
// id-or-name.
func PathLookupKey(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := ValidateLookupKey(chi.URLParam(r, param)); err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_LOOKUP_KEY", err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
