package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a UUIDv7 string, used for request and review identifiers.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewToken generates an opaque 32 character retrieval token.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
