package dto

import (
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
)

// RegistrationRequest payload for enrolling a student. Only the requested
// start date is accepted; end date and price are always derived.
type RegistrationRequest struct {
	StudentID string    `json:"student_id"`
	PlanID    string    `json:"plan_id"`
	StartDate time.Time `json:"start_date"`
}

// RegistrationResponse is the API shape of a registration.
type RegistrationResponse struct {
	ID         string     `json:"id"`
	StudentID  string     `json:"student_id"`
	PlanID     string     `json:"plan_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Price      string     `json:"price"`
	Active     bool       `json:"active"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewRegistrationResponse maps a domain registration.
func NewRegistrationResponse(r *domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:         r.ID,
		StudentID:  r.StudentID,
		PlanID:     r.PlanID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Price:      r.Price.StringFixed(2),
		Active:     r.Active(),
		CanceledAt: r.CanceledAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// NewRegistrationListResponse maps a slice of domain registrations.
func NewRegistrationListResponse(regs []domain.Registration) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(regs))
	for i := range regs {
		out = append(out, NewRegistrationResponse(&regs[i]))
	}
	return out
}
