package auth

import "github.com/hagiodex/hagiodex/internal/model"

// AuthorizeSelf allows a mutation only when actor is the target account.
// There are no roles and no override.
func AuthorizeSelf(actor *model.Account, targetID int64) error {
	if actor == nil {
		return ErrUnauthorized
	}
	if actor.ID != targetID {
		return ErrForbidden
	}
	return nil
}
