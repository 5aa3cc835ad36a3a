package ports

import (
	"context"
	"errors"

	"github.com/fanbase/gatehouse/core"
)

// ErrNotFound is returned by IdentityStore lookups that match no row.
var ErrNotFound = errors.New("identity record not found")

// ErrConflict is returned when a create violates a uniqueness constraint
// (address already provisioned by a concurrent login, or username collision).
var ErrConflict = errors.New("identity record already exists")

// IdentityStore is the relational persistence capability consumed by the
// identity resolver. The address column carries a uniqueness constraint; the
// resolver relies on ErrConflict to recover from concurrent first logins.
type IdentityStore interface {
	// FindAddress looks up an address record by its normalized wallet value.
	FindAddress(ctx context.Context, wallet string) (*core.Address, error)

	// CreateAddress inserts a new address record. Returns ErrConflict if the
	// wallet value already exists.
	CreateAddress(ctx context.Context, addr *core.Address) error

	// FindUserByAddress looks up the user tied to an address id.
	FindUserByAddress(ctx context.Context, addressID string) (*core.User, error)

	// CreateUser inserts a new user record. Returns ErrConflict on a
	// duplicate address id or username.
	CreateUser(ctx context.Context, user *core.User) error

	// Roles returns the closed role reference set by name.
	Roles(ctx context.Context) (map[string]core.Role, error)
}
