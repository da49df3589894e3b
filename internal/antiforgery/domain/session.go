package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the host object owning one token registry. Its lifetime is tied
// to the process; there is no persistence across restarts.
type Session struct {
	ID        uuid.UUID
	Registry  *Registry
	CreatedAt time.Time
}

// SessionStats is a read-only snapshot of a session's registry.
type SessionStats struct {
	Size    int
	Empty   bool
	Entropy int
	Maximum int
}
