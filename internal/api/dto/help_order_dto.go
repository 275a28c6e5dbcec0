package dto

import (
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
)

// HelpOrderCreateRequest payload for a student question.
type HelpOrderCreateRequest struct {
	Question string `json:"question"`
}

// HelpOrderAnswerRequest payload for a staff answer.
type HelpOrderAnswerRequest struct {
	Answer string `json:"answer"`
}

// HelpOrderResponse is the API shape of a help order.
type HelpOrderResponse struct {
	ID        string     `json:"id"`
	StudentID string     `json:"student_id"`
	Question  string     `json:"question"`
	Answer    *string    `json:"answer"`
	AnswerAt  *time.Time `json:"answer_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewHelpOrderResponse maps a domain help order.
func NewHelpOrderResponse(h *domain.HelpOrder) HelpOrderResponse {
	return HelpOrderResponse{
		ID:        h.ID,
		StudentID: h.StudentID,
		Question:  h.Question,
		Answer:    h.Answer,
		AnswerAt:  h.AnswerAt,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// NewHelpOrderListResponse maps a slice of domain help orders.
func NewHelpOrderListResponse(orders []domain.HelpOrder) []HelpOrderResponse {
	out := make([]HelpOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewHelpOrderResponse(&orders[i]))
	}
	return out
}
