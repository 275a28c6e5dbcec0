package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/pkg/util"
)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestComputeSchedule(t *testing.T) {
	plan := &domain.Plan{
		DurationMonths: 6,
		PricePerMonth:  decimal.RequireFromString("100.00"),
	}
	now := at(2024, time.January, 1, 9, 0)

	schedule, err := ComputeSchedule(plan, at(2024, time.January, 31, 10, 45), now)
	require.NoError(t, err)

	assert.Equal(t, at(2024, time.January, 31, 10, 0), schedule.StartDate)
	assert.Equal(t, at(2024, time.July, 31, 10, 0), schedule.EndDate)
	assert.Equal(t, "600.00", schedule.Price.StringFixed(2))
}

func TestComputeScheduleClampsMonthEnd(t *testing.T) {
	plan := &domain.Plan{DurationMonths: 1, PricePerMonth: decimal.RequireFromString("99.90")}
	now := at(2024, time.January, 1, 0, 0)

	schedule, err := ComputeSchedule(plan, at(2024, time.January, 31, 10, 0), now)
	require.NoError(t, err)
	assert.Equal(t, at(2024, time.February, 29, 10, 0), schedule.EndDate)

	schedule, err = ComputeSchedule(plan, at(2025, time.January, 31, 10, 0), now)
	require.NoError(t, err)
	assert.Equal(t, at(2025, time.February, 28, 10, 0), schedule.EndDate)
}

func TestComputeScheduleRejectsPastStart(t *testing.T) {
	plan := &domain.Plan{DurationMonths: 3, PricePerMonth: decimal.RequireFromString("109.00")}

	// A request at 10:30 for a 10:15 start truncates to 10:00, which is
	// before now, so it is rejected.
	now := at(2024, time.June, 10, 10, 30)
	_, err := ComputeSchedule(plan, at(2024, time.June, 10, 10, 15), now)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.CodeInvalidDate))

	// At exactly the top of the hour the truncated start equals now and
	// is accepted.
	now = at(2024, time.June, 10, 10, 0)
	schedule, err := ComputeSchedule(plan, at(2024, time.June, 10, 10, 0), now)
	require.NoError(t, err)
	assert.Equal(t, now, schedule.StartDate)
}

func TestComputeScheduleFutureStart(t *testing.T) {
	plan := &domain.Plan{DurationMonths: 12, PricePerMonth: decimal.RequireFromString("89.50")}
	now := at(2024, time.June, 10, 10, 30)

	schedule, err := ComputeSchedule(plan, at(2024, time.July, 1, 8, 59), now)
	require.NoError(t, err)
	assert.Equal(t, at(2024, time.July, 1, 8, 0), schedule.StartDate)
	assert.Equal(t, at(2025, time.July, 1, 8, 0), schedule.EndDate)
	assert.Equal(t, "1074.00", schedule.Price.StringFixed(2))
}
