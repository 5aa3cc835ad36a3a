package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbase/gatehouse/core"
	"github.com/fanbase/gatehouse/ports"
)

func TestMemoryStoreAddressUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	addr := &core.Address{
		ID:        "addr-1",
		Address:   "0xabc",
		Status:    core.AddressStatusActive,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateAddress(ctx, addr))

	dup := &core.Address{ID: "addr-2", Address: "0xabc", Status: core.AddressStatusActive}
	assert.ErrorIs(t, s.CreateAddress(ctx, dup), ports.ErrConflict)

	got, err := s.FindAddress(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "addr-1", got.ID)
}

func TestMemoryStoreUserUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	user := &core.User{ID: "u-1", AddressID: "addr-1", Role: core.RoleUsers, Username: "user_aaa"}
	require.NoError(t, s.CreateUser(ctx, user))

	t.Run("duplicate address id", func(t *testing.T) {
		dup := &core.User{ID: "u-2", AddressID: "addr-1", Role: core.RoleUsers, Username: "user_bbb"}
		assert.ErrorIs(t, s.CreateUser(ctx, dup), ports.ErrConflict)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := &core.User{ID: "u-3", AddressID: "addr-2", Role: core.RoleUsers, Username: "user_aaa"}
		assert.ErrorIs(t, s.CreateUser(ctx, dup), ports.ErrConflict)
	})
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.FindAddress(ctx, "0xmissing")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = s.FindUserByAddress(ctx, "addr-missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestMemoryStoreRoles(t *testing.T) {
	roles, err := NewMemoryStore().Roles(context.Background())
	require.NoError(t, err)

	assert.Equal(t, core.RoleUsers, roles["Users"])
	assert.Equal(t, core.RoleCreators, roles["Creators"])
	assert.Equal(t, core.RoleAdmin, roles["Admin"])
}
