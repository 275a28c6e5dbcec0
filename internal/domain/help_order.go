package domain

import "time"

// HelpOrder is a question a student asks the gym staff. It is created
// unanswered and transitions to answered exactly once: Answer and AnswerAt
// are set together in a single atomic update.
type HelpOrder struct {
	ID        string
	StudentID string
	Question  string
	Answer    *string
	AnswerAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Answered reports whether the help order has received its answer.
func (h HelpOrder) Answered() bool {
	return h.Answer != nil
}
