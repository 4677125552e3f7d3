package repositories

import (
	"context"

	"github.com/pad2skills/backend/internal/domain/entities"
)

// SessionStore holds per-session dashboard state. Sessions are created
// lazily with documented defaults on first access and are fully
// independent of each other.
type SessionStore interface {
	// Get returns the session, creating it with defaults when absent
	Get(ctx context.Context, id string) (*entities.SessionState, error)

	// Update applies fn to the session and commits the result as one
	// unit. Interactions on the same session are serialized; when fn
	// returns an error nothing is committed.
	Update(ctx context.Context, id string, fn func(*entities.SessionState) error) (*entities.SessionState, error)

	// Delete ends a session and discards its state
	Delete(ctx context.Context, id string) error
}
