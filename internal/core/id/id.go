// Package id generates identifiers for catalogs, documents and
// registry records. IDs are UUIDv7, so values sort by creation time
// and index well in PostgreSQL B-trees.
package id

import (
	"github.com/google/uuid"
)

// ID identifies an entity. It aliases uuid.UUID so driver and JSON
// support come for free.
type ID = uuid.UUID

// New returns a new time-ordered ID.
func New() ID {
	v7, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to V4
		return uuid.New()
	}
	return v7
}

// Parse validates and converts a string to an ID.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse is Parse that panics. For fixtures and tests only.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns the zero ID.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether entityID is the zero ID.
func IsNil(entityID ID) bool {
	return entityID == uuid.Nil
}
