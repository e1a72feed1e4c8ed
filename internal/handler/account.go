package handler

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hagiodex/hagiodex/internal/auth"
	"github.com/hagiodex/hagiodex/internal/handler/dto"
	"github.com/hagiodex/hagiodex/internal/middleware"
	"github.com/hagiodex/hagiodex/internal/service"
)

// AccountHandler handles registration, login and self-service account
// endpoints.
type AccountHandler struct {
	svc    *service.AccountService
	logger *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /users.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.svc.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("account_registered", "account_id", account.ID)

	writeJSON(w, http.StatusCreated, dto.ToAccountResponse(account))
}

// Login handles POST /token. Credentials arrive as an OAuth2 password form
// or as JSON.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Warn("login_failed", "request_id", middleware.GetRequestID(r.Context()))
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect username or password")
			return
		}
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
	})
}

func (h *AccountHandler) readCredentials(w http.ResponseWriter, r *http.Request) (dto.LoginRequest, bool) {
	var req dto.LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid form body")
			return req, false
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	default:
		if !decodeJSON(w, r, &req) {
			return req, false
		}
	}

	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "Request validation failed",
			Code:    "VALIDATION_ERROR",
			Details: missingCredentials(req),
		})
		return req, false
	}
	return req, true
}

func missingCredentials(req dto.LoginRequest) map[string]string {
	details := make(map[string]string, 2)
	if req.Username == "" {
		details["username"] = "cannot be blank"
	}
	if req.Password == "" {
		details["password"] = "cannot be blank"
	}
	return details
}

// Me handles GET /users/me.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	account := auth.MustAccountFromContext(r.Context())
	writeJSON(w, http.StatusOK, dto.ToAccountResponse(account))
}

// Update handles PATCH /users/{id}.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return
	}

	var req dto.UpdateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.svc.UpdateAccount(r.Context(), auth.AccountFromContext(r.Context()), id, service.UpdateAccountInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("account_updated",
		"account_id", account.ID,
		"password_changed", req.Password != nil,
	)

	writeJSON(w, http.StatusOK, dto.ToAccountResponse(account))
}

// Delete handles DELETE /users/{id}.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return
	}

	if _, err := h.svc.DeleteAccount(r.Context(), auth.AccountFromContext(r.Context()), id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("account_deleted", "account_id", id)

	w.WriteHeader(http.StatusNoContent)
}
