package kernel

import (
	"github.com/google/uuid"
)

// UUID identifies a client session. It wraps github.com/google/uuid so that the
// zero value can be told apart from a generated identifier.
//
// Example:
//
//	id := kernel.NewUUID()
//	logger = logger.With("session", id.String())
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// String returns "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx".
func (u UUID) String() string {
	return u.id.String()
}

// Short returns the first eight hex digits, enough to tell sessions apart in logs.
func (u UUID) Short() string {
	return u.id.String()[:8]
}
