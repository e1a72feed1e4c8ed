package service

import (
	"strconv"
	"strings"
)

// LookupKey is a parsed catalog path segment: either a numeric id or a name.
type LookupKey struct {
	ID   int64
	Name string
}

// IsID reports whether the key addresses a record by id.
func (k LookupKey) IsID() bool {
	return k.Name == ""
}

// ParseLookupKey trims raw and treats an all-digit value as an id. Anything
// else, including negative numbers, is a name.
func ParseLookupKey(raw string) LookupKey {
	key := strings.TrimSpace(raw)
	if key != "" && isDigits(key) {
		if id, err := strconv.ParseInt(key, 10, 64); err == nil {
			return LookupKey{ID: id}
		}
	}
	return LookupKey{Name: key}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
