package store

import "github.com/google/uuid"

// SessionGenerator produces journal session tokens.
type SessionGenerator interface {
	Generate() string
}

// UUIDv7Sessions generates time-sortable UUIDv7 session tokens, so sessions
// list in creation order when sorted by id.
type UUIDv7Sessions struct{}

// Generate returns a hyphenated UUIDv7.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Sessions) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
