// Package model defines domain entities for the application.
package model

import "time"

// Account is a registered user. Accounts own nothing but themselves.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountPatch lists the account fields a caller supplied for update.
// A nil field is left unchanged. PasswordHash must already be hashed.
type AccountPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether the patch changes nothing.
func (p AccountPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil
}

// Principal is the authenticated caller injected into the request context
// by the auth middleware.
type Principal struct {
	Account *Account
	TokenID string
}

// AccountID returns the caller's account id, or 0 when unauthenticated.
func (p *Principal) AccountID() int64 {
	if p == nil || p.Account == nil {
		return 0
	}
	return p.Account.ID
}
