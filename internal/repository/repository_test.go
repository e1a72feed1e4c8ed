package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestAccountConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not a pg error", errors.New("boom"), nil},
		{"other sqlstate", &pgconn.PgError{Code: "23503", ConstraintName: "accounts_email_key"}, nil},
		{"email", &pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"}, ErrEmailExists},
		{"username", &pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"}, ErrUsernameExists},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"}), ErrEmailExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accountConflict(tt.err)
			if !errors.Is(got, tt.want) || (tt.want == nil && got != nil) {
				t.Errorf("accountConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}
