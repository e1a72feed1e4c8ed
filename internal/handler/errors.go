package handler

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/hagiodex/hagiodex/internal/auth"
	"github.com/hagiodex/hagiodex/internal/handler/dto"
	"github.com/hagiodex/hagiodex/internal/service"
)

// handleServiceError maps service errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeValidationError(w, err)
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Not enough permissions")
	case errors.Is(err, auth.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username already registered")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Account not found")
	case errors.Is(err, service.ErrCreatureNotFound):
		writeError(w, http.StatusNotFound, "CREATURE_NOT_FOUND", "Creature not found")
	case errors.Is(err, service.ErrCreatureExists):
		writeError(w, http.StatusConflict, "CREATURE_EXISTS", "Creature name already exists")
	case errors.Is(err, service.ErrSaintNotFound):
		writeError(w, http.StatusNotFound, "SAINT_NOT_FOUND", "Saint not found")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeValidationError renders field errors from ozzo-validation as details.
func writeValidationError(w http.ResponseWriter, err error) {
	resp := dto.ErrorResponse{
		Error: "Request validation failed",
		Code:  "VALIDATION_ERROR",
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		resp.Details = make(map[string]string, len(fields))
		for name, fieldErr := range fields {
			resp.Details[name] = fieldErr.Error()
		}
	}

	writeJSON(w, http.StatusUnprocessableEntity, resp)
}
