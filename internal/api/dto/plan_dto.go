package dto

import (
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
)

// PlanRequest payload for creating or updating a plan. Price is the monthly
// price as a decimal string, e.g. "109.00".
type PlanRequest struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Price    string `json:"price"`
}

// PlanResponse is the API shape of a plan.
type PlanResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Duration   int       `json:"duration"`
	Price      string    `json:"price"`
	TotalPrice string    `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewPlanResponse maps a domain plan.
func NewPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		ID:         p.ID,
		Title:      p.Title,
		Duration:   p.DurationMonths,
		Price:      p.PricePerMonth.StringFixed(2),
		TotalPrice: p.TotalPrice().StringFixed(2),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// NewPlanListResponse maps a slice of domain plans.
func NewPlanListResponse(plans []domain.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, NewPlanResponse(&plans[i]))
	}
	return out
}
