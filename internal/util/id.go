// Package util provides shared utility functions.
package util

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultShortIDLength is the default number of characters for short IDs.
const DefaultShortIDLength = 8

// ShortID returns a shortened version of an ID.
// If n is 0 or negative, DefaultShortIDLength (8) is used.
//
// Examples:
//
//	ShortID("3f2a9c1e7b", 0) → "3f2a9c1e"
//	ShortID("3f2a9c1e7b", 4) → "3f2a"
//	ShortID("T1", 8) → "T1" (no truncation if shorter)
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// NewTaskID returns a random lowercase hex id of DefaultShortIDLength characters.
func NewTaskID() string {
	return ShortID(strings.ReplaceAll(uuid.NewString(), "-", ""), DefaultShortIDLength)
}
