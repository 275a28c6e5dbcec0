package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a subscription offering. Title is unique; duration is whole months
// and PricePerMonth is an exact decimal, never a float.
type Plan struct {
	ID             string
	Title          string
	DurationMonths int
	PricePerMonth  decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TotalPrice is the full price over the plan's duration.
func (p Plan) TotalPrice() decimal.Decimal {
	return decimal.NewFromInt(int64(p.DurationMonths)).Mul(p.PricePerMonth)
}
