package dto

import (
	"github.com/hagiodex/hagiodex/internal/model"
)

// RegisterRequest represents the request body for creating an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries password-grant credentials. It is decoded from JSON
// or from an application/x-www-form-urlencoded body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateAccountRequest represents a partial account update. Omitted fields
// are left unchanged.
type UpdateAccountRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// AccountResponse is the public view of an account. The password hash is
// never part of it.
type AccountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ToAccountResponse converts an Account model to AccountResponse DTO.
func ToAccountResponse(account *model.Account) *AccountResponse {
	return &AccountResponse{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
	}
}
