package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hagiodex/hagiodex/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema applies the application schema and empties every table.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	schema, err := os.ReadFile(filepath.Join(root, "internal", "repository", "schema.sql"))
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	truncate := `TRUNCATE accounts, creature_types, creatures, saints RESTART IDENTITY CASCADE`
	if _, err := pool.Exec(ctx, truncate); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}

	return nil
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestAccount creates an account with a unique username and email. The
// password hash is a placeholder; hash a real password when logging in.
func NewTestAccount(t testing.TB, prefix string) *model.Account {
	t.Helper()
	name := UniqueName(prefix)
	return &model.Account{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
	}
}

// NewTestCreature creates a creature with two types.
func NewTestCreature(t testing.TB, name string) *model.Creature {
	t.Helper()
	return &model.Creature{
		Name:  name,
		Types: []string{"grass", "poison"},
		Stats: model.Stats{HP: 45, Attack: 49, Defense: 49},
	}
}

// NewTestSaint creates a saint with every field populated.
func NewTestSaint(t testing.TB, name string) *model.Saint {
	t.Helper()
	return &model.Saint{
		Name:       name,
		Patronage:  "animals, ecology",
		FeastDay:   Date(t, "2000-10-04"),
		Veneration: "Catholic Church",
		Birthplace: "Assisi",
		BirthDate:  Date(t, "1181-09-26"),
		DeathDate:  Date(t, "1226-10-03"),
		History:    "Founder of the Franciscan order.",
		Attributes: "brown habit, stigmata",
	}
}

// Date parses a YYYY-MM-DD date or fails the test.
func Date(t testing.TB, value string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, value)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", value, err)
	}
	return d
}

// UniqueName generates a unique name for tests.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
}
