package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/hagiodex/hagiodex/internal/auth"
	"github.com/hagiodex/hagiodex/internal/metrics"
	"github.com/hagiodex/hagiodex/internal/model"
	"github.com/hagiodex/hagiodex/internal/repository"
)

const (
	maxUsernameLength = 64
	maxEmailLength    = 254
)

// usernamePattern rejects whitespace and control characters.
var usernamePattern = regexp.MustCompile(`^[^\s\x00-\x1f]+$`)

// AccountStore is the persistence the account service needs.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	UpdateAccount(ctx context.Context, id int64, patch model.AccountPatch) (*model.Account, error)
	DeleteAccount(ctx context.Context, id int64) (*model.Account, error)
}

// TokenIssuer mints bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// AccountService handles registration, login and self-service account changes.
type AccountService struct {
	store    AccountStore
	issuer   TokenIssuer
	tokenTTL time.Duration
	metrics  metrics.Recorder

	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService creates a new AccountService. A zero tokenTTL uses
// auth.AccessTokenTTL.
func NewAccountService(store AccountStore, issuer TokenIssuer, tokenTTL time.Duration, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if tokenTTL <= 0 {
		tokenTTL = auth.AccessTokenTTL
	}
	return &AccountService{
		store:    store,
		issuer:   issuer,
		tokenTTL: tokenTTL,
		metrics:  recorder,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks field presence, formats and lengths.
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, usernameRules()...),
		validation.Field(&in.Email, emailRules()...),
		validation.Field(&in.Password, passwordRules()...),
	)
}

// UpdateAccountInput lists the fields a caller wants to change. Nil fields are
// left untouched.
type UpdateAccountInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate checks every supplied field with the same rules as registration.
func (in UpdateAccountInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, optional(usernameRules())...),
		validation.Field(&in.Email, optional(emailRules())...),
		validation.Field(&in.Password, optional(passwordRules())...),
	)
}

func usernameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(1, maxUsernameLength),
		validation.Match(usernamePattern).Error("must not contain whitespace"),
	}
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(3, maxEmailLength),
		is.Email,
	}
}

// passwordRules bound the password in bytes, the unit the hasher limits.
func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(1, auth.MaxPasswordLength),
	}
}

// optional swaps Required for NilOrNotEmpty so an absent pointer passes and a
// supplied empty value does not.
func optional(rules []validation.Rule) []validation.Rule {
	out := make([]validation.Rule, len(rules))
	for i, r := range rules {
		if r == validation.Required {
			r = validation.NilOrNotEmpty
		}
		out[i] = r
	}
	return out
}

// LoginResult is a freshly issued bearer token.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

// Register creates an account. Username and email uniqueness are checked
// separately so the caller learns which one collided.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.Account, error) {
	if err := input.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.ensureUsernameFree(ctx, input.Username, 0); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		return nil, mapAccountStoreError(err)
	}

	s.metrics.IncAccountRegistered()
	return account, nil
}

// Login verifies credentials and issues a bearer token. Unknown usernames
// and wrong passwords both return auth.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	account, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return nil, fmt.Errorf("failed to load account: %w", err)
		}
		s.burnHash(password)
		s.metrics.IncLogin(metrics.LoginFailure)
		return nil, auth.ErrInvalidCredentials
	}

	if password == "" || !auth.CheckPassword(password, account.PasswordHash) {
		s.metrics.IncLogin(metrics.LoginFailure)
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(account.Username, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncLogin(metrics.LoginSuccess)
	return &LoginResult{
		AccessToken: token,
		TokenType:   auth.TokenType,
		ExpiresIn:   s.tokenTTL,
	}, nil
}

// burnHash spends roughly one verification worth of time so a missing
// account is not distinguishable from a wrong password by latency.
func (s *AccountService) burnHash(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("not-a-real-password")
	})
	if s.dummyHash != "" && password != "" {
		_ = auth.CheckPassword(password, s.dummyHash)
	}
}

// GetAccount retrieves an account by id.
func (s *AccountService) GetAccount(ctx context.Context, id int64) (*model.Account, error) {
	account, err := s.store.GetAccountByID(ctx, id)
	if err != nil {
		return nil, mapAccountStoreError(err)
	}
	return account, nil
}

// UpdateAccount changes the supplied fields of the target account. The actor
// must be the target; a supplied password is always re-hashed.
func (s *AccountService) UpdateAccount(ctx context.Context, actor *model.Account, id int64, input UpdateAccountInput) (*model.Account, error) {
	if err := auth.AuthorizeSelf(actor, id); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, invalid(err)
	}

	var patch model.AccountPatch
	if input.Username != nil && *input.Username != actor.Username {
		if err := s.ensureUsernameFree(ctx, *input.Username, id); err != nil {
			return nil, err
		}
		patch.Username = input.Username
	}
	if input.Email != nil && *input.Email != actor.Email {
		if err := s.ensureEmailFree(ctx, *input.Email, id); err != nil {
			return nil, err
		}
		patch.Email = input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	account, err := s.store.UpdateAccount(ctx, id, patch)
	if err != nil {
		return nil, mapAccountStoreError(err)
	}

	if !patch.IsEmpty() {
		s.metrics.IncAccountUpdated()
	}
	return account, nil
}

// DeleteAccount removes the target account. The actor must be the target.
func (s *AccountService) DeleteAccount(ctx context.Context, actor *model.Account, id int64) (*model.Account, error) {
	if err := auth.AuthorizeSelf(actor, id); err != nil {
		return nil, err
	}

	account, err := s.store.DeleteAccount(ctx, id)
	if err != nil {
		return nil, mapAccountStoreError(err)
	}

	s.metrics.IncAccountDeleted()
	return account, nil
}

func (s *AccountService) ensureUsernameFree(ctx context.Context, username string, selfID int64) error {
	existing, err := s.store.GetAccountByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check username: %w", err)
	case existing.ID != selfID:
		return ErrUsernameTaken
	}
	return nil
}

func (s *AccountService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.store.GetAccountByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check email: %w", err)
	case existing.ID != selfID:
		return ErrEmailTaken
	}
	return nil
}

// mapAccountStoreError converts repository errors to service errors. The
// unique constraints close the race the pre-checks leave open.
func mapAccountStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, repository.ErrUsernameExists):
		return ErrUsernameTaken
	case errors.Is(err, repository.ErrEmailExists):
		return ErrEmailTaken
	default:
		return fmt.Errorf("account store: %w", err)
	}
}
