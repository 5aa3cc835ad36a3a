package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fanbase/gatehouse/core"
)

// GroupDirectory is an in-memory registry of moderation groups. Its
// endpoints carry an Admin-only allow-list.
type GroupDirectory struct {
	mu     sync.RWMutex
	groups []core.Group
}

// NewGroupDirectory creates an empty group directory.
func NewGroupDirectory() *GroupDirectory {
	return &GroupDirectory{}
}

// List returns all groups.
func (g *GroupDirectory) List() []core.Group {
	g.mu.RLock()
	defer g.mu.RUnlock()

	groups := make([]core.Group, len(g.groups))
	copy(groups, g.groups)
	return groups
}

// Create adds a group owned by ownerID.
func (g *GroupDirectory) Create(name, ownerID string) core.Group {
	group := core.Group{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.groups = append(g.groups, group)

	return group
}
