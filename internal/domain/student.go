package domain

import "time"

// Student is a gym member record.
type Student struct {
	ID        string
	Name      string
	Email     string
	Age       int
	WeightKG  float64
	HeightM   float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
