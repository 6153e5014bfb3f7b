// Package store provides the session repositories. Everything is in-memory
// and process-local; sessions do not survive a restart.
package store

import (
	"errors"

	"github.com/bcare-id/bcare/internal/domain"
)

// ErrNotFound is returned when no session exists for an id.
var ErrNotFound = errors.New("session not found")

// Store is the injected session repository. Lifetime and eviction policy
// belong to the implementation, not to ambient package state.
type Store interface {
	// Get retrieves a session by id. Returns ErrNotFound for unknown ids.
	Get(id string) (*domain.Session, error)

	// Put creates or replaces a session.
	Put(session *domain.Session) error

	// Delete removes a session. Deleting an unknown id is a no-op.
	Delete(id string) error

	// Len reports the number of live sessions.
	Len() int
}
