package domain

import "time"

// Checkin is a single attendance record. Rows are append-only: the quota
// engine creates them and nothing ever updates or deletes them.
type Checkin struct {
	ID        string
	StudentID string
	CreatedAt time.Time
}
