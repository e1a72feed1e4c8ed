package auth

import (
	"context"
	"fmt"

	"github.com/hagiodex/hagiodex/internal/model"
)

// AccountFinder looks up accounts by username. Implementations return a
// non-nil error when no account matches.
type AccountFinder interface {
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
}

// Resolver turns a bearer token into the account it was issued for.
type Resolver struct {
	verifier TokenVerifier
	finder   AccountFinder
}

// NewResolver creates a Resolver.
func NewResolver(verifier TokenVerifier, finder AccountFinder) *Resolver {
	return &Resolver{
		verifier: verifier,
		finder:   finder,
	}
}

// Authenticate verifies token and resolves its subject.
// All failures wrap ErrUnauthorized; the wrapped detail is for logs only.
func (r *Resolver) Authenticate(ctx context.Context, token string) (*model.Account, *Claims, error) {
	if token == "" {
		return nil, nil, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	claims, err := r.verifier.Verify(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	account, err := r.Resolve(ctx, claims)
	if err != nil {
		return nil, nil, err
	}
	return account, claims, nil
}

// Resolve loads the account named by the claims' subject.
func (r *Resolver) Resolve(ctx context.Context, claims *Claims) (*model.Account, error) {
	username := claims.Username()
	if username == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrUnauthorized)
	}

	account, err := r.finder.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: unknown subject", ErrUnauthorized)
	}

	return account, nil
}
