package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hagiodex/hagiodex/internal/auth"
	"github.com/hagiodex/hagiodex/internal/metrics"
	"github.com/hagiodex/hagiodex/internal/model"
)

// unauthorizedMessage is shared by every authentication failure.
const unauthorizedMessage = "Could not validate credentials"

// Authenticator resolves a bearer token to the account it names.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Account, *auth.Claims, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger        *slog.Logger
	Authenticator Authenticator
	Metrics       metrics.Recorder
	// MinDuration pads every auth decision to at least this long. Zero
	// disables padding.
	MinDuration time.Duration
}

// Auth returns a middleware that requires a valid bearer token.
// It extracts the token from the Authorization header, resolves it to an
// account, and injects the Principal into the request context.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			principal, reason := authenticate(r, cfg)

			if cfg.MinDuration > 0 {
				padAuth(r.Context(), start, cfg.MinDuration)
			}

			if principal == nil {
				cfg.Metrics.IncAuthRejected()
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			setLogAccount(r.Context(), principal.AccountID())
			cfg.Logger.Debug("authentication successful",
				slog.Int64("account_id", principal.AccountID()),
				slog.String("token_id", principal.TokenID),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate returns the principal, or nil and a log-safe reason.
func authenticate(r *http.Request, cfg AuthConfig) (*model.Principal, string) {
	token := extractBearerToken(r)
	if token == "" {
		return nil, "missing_token"
	}

	account, claims, err := cfg.Authenticator.Authenticate(r.Context(), token)
	if err != nil {
		cfg.Logger.Debug("token rejected",
			slog.String("error", err.Error()),
			slog.String("request_id", GetRequestID(r.Context())),
		)
		return nil, "invalid_token"
	}

	principal := &model.Principal{Account: account}
	if claims != nil {
		principal.TokenID = claims.ID
	}
	return principal, ""
}

// padAuth sleeps until floor has elapsed since start or ctx is done.
func padAuth(ctx context.Context, start time.Time, floor time.Duration) {
	remaining := floor - time.Since(start)
	if remaining <= 0 {
		return
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// extractBearerToken returns the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// writeAuthError writes a 401 Unauthorized response with a bearer challenge.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, CodeUnauthorized, unauthorizedMessage)
}
