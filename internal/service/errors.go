// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
)

// Service errors.
var (
	ErrUsernameTaken    = errors.New("username already registered")
	ErrEmailTaken       = errors.New("email already registered")
	ErrAccountNotFound  = errors.New("account not found")
	ErrCreatureNotFound = errors.New("creature not found")
	ErrCreatureExists   = errors.New("creature name already exists")
	ErrSaintNotFound    = errors.New("saint not found")
	ErrValidation       = errors.New("validation failed")
)

// invalid marks err as a validation failure. The ozzo validation.Errors
// value stays reachable through errors.As.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
