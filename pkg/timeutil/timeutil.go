// Package timeutil provides calendar arithmetic for membership terms and
// attendance windows. All day-boundary helpers take an explicit location so
// the reference time zone is a configuration concern, not a package constant.
package timeutil

import (
	"fmt"
	"time"
)

// Clock supplies the current instant. Services receive a Clock instead of
// calling time.Now so tests can pin evaluation time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.Instant }

// StartOfHour truncates a time to the top of its hour.
func StartOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// StartOfDay returns 00:00:00 of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns 23:59:59.999999999 of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, loc)
}

// DaysAgo moves t back n calendar days.
func DaysAgo(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, -n)
}

// SameDay reports whether two instants fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	al, bl := a.In(loc), b.In(loc)
	return al.Year() == bl.Year() && al.YearDay() == bl.YearDay()
}

// AddMonths advances t by n whole calendar months, clamping to the last day
// of the target month when the source day does not exist there
// (Jan 31 + 1 month = Feb 28, or Feb 29 in leap years). This differs from
// time.Time.AddDate, which normalizes the overflow into the following month.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	total := int(month) - 1 + n
	targetYear := year + total/12
	targetMonth := time.Month(total%12 + 1)
	if total < 0 {
		// Go's integer division truncates toward zero; fix up negatives.
		targetYear = year + (total-11)/12
		targetMonth = time.Month((total%12+12)%12 + 1)
	}

	if last := lastDayOfMonth(targetYear, targetMonth); day > last {
		day = last
	}
	return time.Date(targetYear, targetMonth, day, hour, min, sec, t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Portuguese month names, lowercase as rendered in member-facing mail.
var monthNamesPT = [...]string{
	"", "janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthNamePT returns the Portuguese name for a month.
func MonthNamePT(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNamesPT[m]
}

// FormatMailDate renders an instant the way confirmation mail presents it:
// "dia 31 de janeiro, às 10:00h".
func FormatMailDate(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return fmt.Sprintf("dia %02d de %s, às %d:%02dh",
		local.Day(), MonthNamePT(local.Month()), local.Hour(), local.Minute())
}
