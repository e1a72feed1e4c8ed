package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagiodex/hagiodex/internal/model"
)

var errNoAccount = errors.New("account not found")

type mapFinder struct {
	accounts map[string]*model.Account
	err      error
}

func (f *mapFinder) GetAccountByUsername(_ context.Context, username string) (*model.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.accounts[username]
	if !ok {
		return nil, errNoAccount
	}
	return a, nil
}

func TestResolver_Authenticate(t *testing.T) {
	t.Parallel()

	issuer, _ := newTestIssuer(t)
	account := &model.Account{ID: 7, Username: "u1", Email: "u1@x.com"}
	resolver := NewResolver(issuer, &mapFinder{accounts: map[string]*model.Account{"u1": account}})

	token, err := issuer.Issue("u1", AccessTokenTTL)
	require.NoError(t, err)

	got, claims, err := resolver.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "u1", claims.Username())
}

func TestResolver_FailsClosed(t *testing.T) {
	t.Parallel()

	issuer, clock := newTestIssuer(t)
	finder := &mapFinder{accounts: map[string]*model.Account{
		"u1": {ID: 1, Username: "u1"},
	}}
	resolver := NewResolver(issuer, finder)

	deleted, err := issuer.Issue("ghost", time.Minute)
	require.NoError(t, err)

	expired, err := issuer.Issue("u1", time.Minute)
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage", "abc.def.ghi"},
		{"expired", expired},
		{"subject since deleted", deleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, _, err := resolver.Authenticate(context.Background(), tt.token)
			assert.Nil(t, account)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestResolver_StoreError(t *testing.T) {
	t.Parallel()

	issuer, _ := newTestIssuer(t)
	resolver := NewResolver(issuer, &mapFinder{err: errors.New("connection refused")})

	token, err := issuer.Issue("u1", time.Minute)
	require.NoError(t, err)

	_, _, err = resolver.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolver_Resolve_NilClaims(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(nil, &mapFinder{})

	_, err := resolver.Resolve(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = resolver.Resolve(context.Background(), &Claims{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorizeSelf(t *testing.T) {
	t.Parallel()

	actor := &model.Account{ID: 1, Username: "u1"}

	assert.NoError(t, AuthorizeSelf(actor, 1))
	assert.ErrorIs(t, AuthorizeSelf(actor, 2), ErrForbidden)
	assert.ErrorIs(t, AuthorizeSelf(nil, 1), ErrUnauthorized)
}

func TestContext_Principal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Nil(t, PrincipalFromContext(ctx))
	assert.Nil(t, AccountFromContext(ctx))
	assert.Panics(t, func() { MustAccountFromContext(ctx) })

	account := &model.Account{ID: 3}
	ctx = ContextWithPrincipal(ctx, &model.Principal{Account: account, TokenID: "tid"})

	assert.Same(t, account, AccountFromContext(ctx))
	assert.Same(t, account, MustAccountFromContext(ctx))
	assert.Equal(t, "tid", PrincipalFromContext(ctx).TokenID)
}
