package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Registration is a paid enrollment of a student into a plan.
//
// EndDate and Price are derived from the plan and StartDate and are always
// recomputed together; they are never accepted from callers. A registration
// is active while CanceledAt is nil, and a student holds at most one active
// registration at a time.
type Registration struct {
	ID         string
	StudentID  string
	PlanID     string
	StartDate  time.Time
	EndDate    time.Time
	Price      decimal.Decimal
	CanceledAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Active reports whether the registration has not been canceled.
func (r Registration) Active() bool {
	return r.CanceledAt == nil
}
