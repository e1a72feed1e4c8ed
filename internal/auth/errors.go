package auth

import "errors"

// Authentication and authorization errors. Callers outside this package must
// not distinguish ErrInvalidToken from ErrUnauthorized when reporting.
var (
	// ErrInvalidCredentials indicates a wrong username/password pair.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrInvalidToken indicates a malformed, mis-signed or expired token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthorized indicates the request could not be tied to an account.
	ErrUnauthorized = errors.New("could not validate credentials")
	// ErrForbidden indicates an authenticated caller acting on another account.
	ErrForbidden = errors.New("forbidden")
	// ErrSecretTooShort indicates a signing secret below MinSecretLength.
	ErrSecretTooShort = errors.New("signing secret too short")
)
