package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spec-kit/gym-service/internal/queue"
	"github.com/spec-kit/gym-service/pkg/retry"
	"github.com/spec-kit/gym-service/pkg/timeutil"
)

// Handler processes one claimed job.
type Handler func(ctx context.Context, job *queue.Job) error

// NewRegistrationConfirmationHandler renders the welcome mail for a new
// registration and hands it to the mailer.
func NewRegistrationConfirmationHandler(mailer Mailer, loc *time.Location) Handler {
	return func(ctx context.Context, job *queue.Job) error {
		var payload queue.RegistrationConfirmationPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return retry.Permanent(fmt.Errorf("decode registration payload: %w", err))
		}

		return mailer.Send(ctx, Message{
			To:       payload.StudentEmail,
			Subject:  "Matrícula Gympoint",
			Template: "registration",
			Context: map[string]string{
				"student":    payload.StudentName,
				"plan":       payload.PlanTitle,
				"start_date": timeutil.FormatMailDate(payload.StartDate, loc),
				"end_date":   timeutil.FormatMailDate(payload.EndDate, loc),
				"price":      payload.Price,
			},
		})
	}
}

// NewHelpOrderAnsweredHandler renders the answer notification mail.
func NewHelpOrderAnsweredHandler(mailer Mailer) Handler {
	return func(ctx context.Context, job *queue.Job) error {
		var payload queue.HelpOrderAnsweredPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return retry.Permanent(fmt.Errorf("decode help order payload: %w", err))
		}

		return mailer.Send(ctx, Message{
			To:       payload.StudentEmail,
			Subject:  "Resposta Gympoint",
			Template: "helporder",
			Context: map[string]string{
				"student":  payload.StudentName,
				"question": payload.Question,
				"answer":   payload.Answer,
			},
		})
	}
}
