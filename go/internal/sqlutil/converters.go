package sqlutil

import (
	"strings"

	"github.com/google/uuid"
)

// Helper functions for nullable columns. pgx scans NULL into nil pointers.

// NullIfEmpty converts an empty or blank string to nil
func NullIfEmpty(val string) *string {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	return &val
}

// FromStringPtr converts a nullable string to a Go string with default
func FromStringPtr(val *string, defaultVal string) string {
	if val == nil {
		return defaultVal
	}
	return *val
}

// UUIDStrings converts ids to their text form for array parameters
func UUIDStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
