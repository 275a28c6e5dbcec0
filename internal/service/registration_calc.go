package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/pkg/timeutil"
	"github.com/spec-kit/gym-service/pkg/util"
)

// RegistrationSchedule is the derived portion of a registration.
type RegistrationSchedule struct {
	StartDate time.Time
	EndDate   time.Time
	Price     decimal.Decimal
}

// ComputeSchedule derives the effective start, end, and total price for an
// enrollment in plan beginning at requestedStart.
//
// The start is truncated to the top of its hour before anything else, and
// the truncated value is compared against the untruncated now: a request at
// 10:30 for a start of 10:00 the same day is in the past and rejected. The
// end date advances by the plan's whole months, clamping to the last day of
// the target month when the start day does not exist there (Jan 31 plus one
// month lands on Feb 28 or 29). Price is duration times monthly price,
// computed in exact decimals.
func ComputeSchedule(plan *domain.Plan, requestedStart, now time.Time) (RegistrationSchedule, error) {
	start := timeutil.StartOfHour(requestedStart)
	if start.Before(now) {
		return RegistrationSchedule{}, util.NewInvalidDate("past dates are not permitted")
	}

	return RegistrationSchedule{
		StartDate: start,
		EndDate:   timeutil.AddMonths(start, plan.DurationMonths),
		Price:     plan.TotalPrice(),
	}, nil
}
