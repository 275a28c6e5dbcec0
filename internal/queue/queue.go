// Package queue provides the durable notification work queue. Enqueue is a
// synchronous write to durable storage and returns before any delivery
// happens; consumption runs in separate worker loops with at-least-once
// semantics.
package queue

import (
	"context"
	"encoding/json"
	"time"
)

// JobType identifies the handler responsible for a job.
type JobType string

const (
	JobRegistrationConfirmation JobType = "registration-confirmation"
	JobHelpOrderAnswered        JobType = "help-order-answered"
)

// Job is a unit of deferred work. AttemptCount counts failed deliveries;
// the retry ceiling lives in worker configuration, not here.
type Job struct {
	ID           string          `json:"id"`
	Type         JobType         `json:"type"`
	Payload      json.RawMessage `json:"payload"`
	EnqueuedAt   time.Time       `json:"enqueued_at"`
	AttemptCount int             `json:"attempt_count"`
}

// RegistrationConfirmationPayload carries everything the confirmation mail
// needs so the worker never reads entity state that may have changed since.
type RegistrationConfirmationPayload struct {
	RegistrationID string    `json:"registration_id"`
	StudentName    string    `json:"student_name"`
	StudentEmail   string    `json:"student_email"`
	PlanTitle      string    `json:"plan_title"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Price          string    `json:"price"`
}

// HelpOrderAnsweredPayload carries the answered question for mail rendering.
type HelpOrderAnsweredPayload struct {
	HelpOrderID  string `json:"help_order_id"`
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
}

// Queue is the durable job store contract.
//
// Claim hands a job to exactly one worker under a lease; until the worker
// acks, retries, or buries it, no other worker sees the job. A lease that
// expires (crashed worker) makes the job reclaimable via ReclaimExpired.
type Queue interface {
	// Enqueue durably records a job and returns immediately.
	Enqueue(ctx context.Context, jobType JobType, payload any) (*Job, error)
	// Claim leases the next ready job, or returns (nil, nil) when idle.
	Claim(ctx context.Context, leaseFor time.Duration) (*Job, error)
	// Ack deletes a delivered job.
	Ack(ctx context.Context, job *Job) error
	// Retry re-schedules a failed job after delay with its incremented
	// attempt count persisted.
	Retry(ctx context.Context, job *Job, delay time.Duration) error
	// Bury moves a job to the dead-letter store.
	Bury(ctx context.Context, job *Job, cause string) error
	// ReclaimExpired returns expired leases and due retries to the ready
	// state, reporting how many jobs moved.
	ReclaimExpired(ctx context.Context) (int, error)
}

// DeadJob is a job parked in the dead-letter store with its failure cause.
type DeadJob struct {
	Job      Job       `json:"job"`
	Cause    string    `json:"cause"`
	FailedAt time.Time `json:"failed_at"`
}
