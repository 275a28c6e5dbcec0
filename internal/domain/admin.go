package domain

import "time"

// AdminUser is a back-office operator. Privileged operations (registration
// management, plan management, help-order answers) require an admin caller.
type AdminUser struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
