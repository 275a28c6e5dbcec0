package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestStartOfHour(t *testing.T) {
	got := StartOfHour(date(2024, time.March, 10, 14, 37))
	assert.Equal(t, date(2024, time.March, 10, 14, 0), got)

	already := date(2024, time.March, 10, 14, 0)
	assert.Equal(t, already, StartOfHour(already))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"plain month", date(2024, time.January, 15, 10, 0), 1, date(2024, time.February, 15, 10, 0)},
		{"jan 31 clamps to feb 29 in leap year", date(2024, time.January, 31, 10, 0), 1, date(2024, time.February, 29, 10, 0)},
		{"jan 31 clamps to feb 28", date(2025, time.January, 31, 10, 0), 1, date(2025, time.February, 28, 10, 0)},
		{"six months from jan 31", date(2024, time.January, 31, 10, 0), 6, date(2024, time.July, 31, 10, 0)},
		{"cross year boundary", date(2024, time.November, 30, 8, 0), 3, date(2025, time.February, 28, 8, 0)},
		{"twelve months", date(2024, time.February, 29, 9, 0), 12, date(2025, time.February, 28, 9, 0)},
		{"zero months", date(2024, time.May, 20, 7, 0), 0, date(2024, time.May, 20, 7, 0)},
		{"negative month", date(2024, time.March, 31, 10, 0), -1, date(2024, time.February, 29, 10, 0)},
		{"negative across year", date(2024, time.January, 15, 10, 0), -2, date(2023, time.November, 15, 10, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.months))
		})
	}
}

func TestSameDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 01:00 UTC is still the previous day in São Paulo.
	a := date(2024, time.June, 10, 1, 0)
	b := date(2024, time.June, 10, 22, 0)
	assert.True(t, SameDay(a, b, time.UTC))
	assert.False(t, SameDay(a, b, loc))
}

func TestDayBounds(t *testing.T) {
	at := date(2024, time.June, 10, 15, 30)
	assert.Equal(t, date(2024, time.June, 10, 0, 0), StartOfDay(at, time.UTC))

	end := EndOfDay(at, time.UTC)
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Before(date(2024, time.June, 11, 0, 0)))
}

func TestDaysAgo(t *testing.T) {
	at := date(2024, time.June, 10, 15, 30)
	assert.Equal(t, date(2024, time.June, 3, 15, 30), DaysAgo(at, 7))
}

func TestFormatMailDate(t *testing.T) {
	assert.Equal(t, "dia 31 de janeiro, às 10:00h",
		FormatMailDate(date(2024, time.January, 31, 10, 0), time.UTC))
	assert.Equal(t, "dia 05 de março, às 9:05h",
		FormatMailDate(date(2024, time.March, 5, 9, 5), time.UTC))
}

func TestMonthNamePT(t *testing.T) {
	assert.Equal(t, "dezembro", MonthNamePT(time.December))
	assert.Equal(t, "", MonthNamePT(time.Month(13)))
}

func TestFixedClock(t *testing.T) {
	at := date(2024, time.June, 10, 15, 30)
	assert.Equal(t, at, FixedClock{Instant: at}.Now())
}
