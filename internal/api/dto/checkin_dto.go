package dto

import (
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
)

// CheckinResponse is the API shape of an attendance record.
type CheckinResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCheckinResponse maps a domain check-in.
func NewCheckinResponse(c *domain.Checkin) CheckinResponse {
	return CheckinResponse{ID: c.ID, StudentID: c.StudentID, CreatedAt: c.CreatedAt}
}

// NewCheckinListResponse maps a slice of domain check-ins.
func NewCheckinListResponse(checkins []domain.Checkin) []CheckinResponse {
	out := make([]CheckinResponse, 0, len(checkins))
	for i := range checkins {
		out = append(out, NewCheckinResponse(&checkins[i]))
	}
	return out
}
