package auth

import (
	"context"

	"github.com/hagiodex/hagiodex/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// principalContextKey is the context key for storing the Principal.
	principalContextKey contextKey = "principal"
)

// ContextWithPrincipal adds the authenticated caller to the context.
func ContextWithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext retrieves the Principal from the context.
// Returns nil if not present.
func PrincipalFromContext(ctx context.Context) *model.Principal {
	p, ok := ctx.Value(principalContextKey).(*model.Principal)
	if !ok {
		return nil
	}
	return p
}

// AccountFromContext is a convenience function to get the caller's account.
// Returns nil if not authenticated.
func AccountFromContext(ctx context.Context) *model.Account {
	p := PrincipalFromContext(ctx)
	if p == nil {
		return nil
	}
	return p.Account
}

// MustAccountFromContext retrieves the caller's account.
// Panics if not present (use only when auth middleware has run).
func MustAccountFromContext(ctx context.Context) *model.Account {
	account := AccountFromContext(ctx)
	if account == nil {
		panic("principal not found - ensure auth middleware is applied")
	}
	return account
}
