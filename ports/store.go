package ports

import (
	"context"
	"time"

	"github.com/fanbase/gatehouse/core"
)

// SessionStore holds server-side sessions keyed by opaque session id.
// Implementations provide last-writer-wins semantics per key; callers write
// all session fields together in a single Put.
type SessionStore interface {
	// Get returns the session for id, or core.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*core.Session, error)

	// Put stores the session under its id with the given TTL, replacing any
	// prior value.
	Put(ctx context.Context, session *core.Session, ttl time.Duration) error

	// Delete removes the session. Deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error
}
