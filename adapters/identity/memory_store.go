package identity

import (
	"context"
	"sync"

	"github.com/fanbase/gatehouse/core"
	"github.com/fanbase/gatehouse/ports"
)

// MemoryStore is an in-memory IdentityStore with the same uniqueness
// semantics as the Postgres adapter: address, address_id and username are
// unique, and duplicate creates return ports.ErrConflict.
type MemoryStore struct {
	mu              sync.Mutex
	addressByWallet map[string]*core.Address
	userByAddressID map[string]*core.User
	usernames       map[string]struct{}
	roles           map[string]core.Role
}

// NewMemoryStore creates a memory identity store seeded with the full role set.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		addressByWallet: make(map[string]*core.Address),
		userByAddressID: make(map[string]*core.User),
		usernames:       make(map[string]struct{}),
		roles: map[string]core.Role{
			core.RoleUsers.String():    core.RoleUsers,
			core.RoleCreators.String(): core.RoleCreators,
			core.RoleAdmin.String():    core.RoleAdmin,
		},
	}
}

// NewMemoryStoreWithRoles creates a memory identity store with an explicit
// role set. Tests use this to simulate a missing baseline role.
func NewMemoryStoreWithRoles(roles map[string]core.Role) *MemoryStore {
	s := NewMemoryStore()
	s.roles = roles
	return s
}

// FindAddress looks up an address record by wallet value.
func (s *MemoryStore) FindAddress(ctx context.Context, wallet string) (*core.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr, ok := s.addressByWallet[wallet]
	if !ok {
		return nil, ports.ErrNotFound
	}

	copied := *addr
	return &copied, nil
}

// CreateAddress inserts an address record, enforcing wallet uniqueness.
func (s *MemoryStore) CreateAddress(ctx context.Context, addr *core.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.addressByWallet[addr.Address]; exists {
		return ports.ErrConflict
	}

	copied := *addr
	s.addressByWallet[addr.Address] = &copied
	return nil
}

// FindUserByAddress looks up the user tied to an address id.
func (s *MemoryStore) FindUserByAddress(ctx context.Context, addressID string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.userByAddressID[addressID]
	if !ok {
		return nil, ports.ErrNotFound
	}

	copied := *user
	return &copied, nil
}

// CreateUser inserts a user record, enforcing address and username uniqueness.
func (s *MemoryStore) CreateUser(ctx context.Context, user *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.userByAddressID[user.AddressID]; exists {
		return ports.ErrConflict
	}
	if _, exists := s.usernames[user.Username]; exists {
		return ports.ErrConflict
	}

	copied := *user
	s.userByAddressID[user.AddressID] = &copied
	s.usernames[user.Username] = struct{}{}
	return nil
}

// Roles returns the role reference set.
func (s *MemoryStore) Roles(ctx context.Context) (map[string]core.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roles := make(map[string]core.Role, len(s.roles))
	for name, id := range s.roles {
		roles[name] = id
	}
	return roles, nil
}

var _ ports.IdentityStore = (*MemoryStore)(nil)
