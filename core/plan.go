package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a creator subscription plan. Plans are a consumer of the
// authorization gate: reading is open to any authenticated role, writing is
// restricted to Creators and Admin.
type Plan struct {
	ID        string          `json:"id"`
	CreatorID string          `json:"creatorId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
}
