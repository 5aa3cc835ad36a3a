package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fanbase/gatehouse/core"
)

// PlanCatalog is an in-memory catalog of subscription plans. It exists as a
// consumer of the authorization gate: listing is open to any authenticated
// role, creation to Creators and Admin.
type PlanCatalog struct {
	mu    sync.RWMutex
	plans []core.Plan
}

// NewPlanCatalog creates an empty plan catalog.
func NewPlanCatalog() *PlanCatalog {
	return &PlanCatalog{}
}

// List returns all plans.
func (p *PlanCatalog) List() []core.Plan {
	p.mu.RLock()
	defer p.mu.RUnlock()

	plans := make([]core.Plan, len(p.plans))
	copy(plans, p.plans)
	return plans
}

// Create adds a plan owned by creatorID.
func (p *PlanCatalog) Create(creatorID, name string, price decimal.Decimal, currency string) core.Plan {
	plan := core.Plan{
		ID:        uuid.New().String(),
		CreatorID: creatorID,
		Name:      name,
		Price:     price,
		Currency:  currency,
		CreatedAt: time.Now(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.plans = append(p.plans, plan)

	return plan
}
