package main

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"postgres://app:s3cret@db:5432/hagiodex", "postgres://app@db:5432/hagiodex"},
		{"postgres://:s3cret@db/hagiodex", "postgres://redacted@db/hagiodex"},
		{"postgres://db/hagiodex", "postgres://db/hagiodex"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, redactURL(tt.raw), tt.raw)
	}
}

func TestSanitizeError(t *testing.T) {
	dsn := "postgres://app:s3cret@db:5432/hagiodex"
	err := errors.New("dial " + dsn + " failed: password=s3cret rejected")

	got := sanitizeError(err, dsn)

	assert.NotContains(t, got, "s3cret")
	assert.True(t, strings.HasPrefix(got, "dial postgres://app@db:5432/hagiodex"))
	assert.Contains(t, got, "password=redacted")
	assert.Empty(t, sanitizeError(nil))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}
