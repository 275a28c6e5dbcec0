package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/queue"
	"github.com/spec-kit/gym-service/internal/repository"
	"github.com/spec-kit/gym-service/pkg/timeutil"
	"github.com/spec-kit/gym-service/pkg/util"
)

// HelpOrderService manages student questions and staff answers.
type HelpOrderService struct {
	helpOrders repository.HelpOrderRepository
	students   repository.StudentRepository
	queue      queue.Queue
	clock      timeutil.Clock
	logger     *zap.Logger
}

// NewHelpOrderService constructs the service.
func NewHelpOrderService(helpOrders repository.HelpOrderRepository, students repository.StudentRepository, q queue.Queue, clock timeutil.Clock, logger *zap.Logger) *HelpOrderService {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &HelpOrderService{helpOrders: helpOrders, students: students, queue: q, clock: clock, logger: logger}
}

// Create records a student question.
func (s *HelpOrderService) Create(ctx context.Context, studentID, question string) (*domain.HelpOrder, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, util.NewValidationError("question is required", nil)
	}
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, util.MapError(notFoundAs(err, "student"))
	}

	order := &domain.HelpOrder{StudentID: studentID, Question: question}
	if err := s.helpOrders.Create(ctx, order); err != nil {
		return nil, util.MapError(err)
	}
	return order, nil
}

// ListForStudent returns a student's questions, newest first.
func (s *HelpOrderService) ListForStudent(ctx context.Context, studentID string, limit, offset int) ([]domain.HelpOrder, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, util.MapError(notFoundAs(err, "student"))
	}
	orders, err := s.helpOrders.ListByStudent(ctx, studentID, limit, offset)
	if err != nil {
		return nil, util.MapError(err)
	}
	return orders, nil
}

// ListUnanswered returns the staff work queue of open questions.
func (s *HelpOrderService) ListUnanswered(ctx context.Context, limit, offset int) ([]domain.HelpOrder, error) {
	orders, err := s.helpOrders.ListUnanswered(ctx, limit, offset)
	if err != nil {
		return nil, util.MapError(err)
	}
	return orders, nil
}

// Answer records the staff answer for an unanswered help order and queues
// the notification mail. The unanswered-to-answered transition is a single
// conditional update, so two concurrent answers cannot both win; the loser
// sees an already-answered conflict.
func (s *HelpOrderService) Answer(ctx context.Context, id, answer string) (*domain.HelpOrder, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, util.NewValidationError("answer is required", nil)
	}

	order, err := s.helpOrders.Answer(ctx, id, answer, s.clock.Now())
	if err != nil {
		if err == pgx.ErrNoRows {
			existing, getErr := s.helpOrders.GetByID(ctx, id)
			if getErr == pgx.ErrNoRows {
				return nil, util.NewNotFound("help order", nil)
			}
			if getErr != nil {
				return nil, util.MapError(getErr)
			}
			if existing.Answered() {
				return nil, util.NewAlreadyAnswered(id)
			}
			return nil, util.NewNotFound("help order", nil)
		}
		return nil, util.MapError(err)
	}

	s.enqueueAnswered(ctx, order)
	return order, nil
}

func (s *HelpOrderService) enqueueAnswered(ctx context.Context, order *domain.HelpOrder) {
	if s.queue == nil || order.Answer == nil {
		return
	}
	student, err := s.students.GetByID(ctx, order.StudentID)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("load student for answer notification failed",
				zap.String("help_order_id", order.ID),
				zap.Error(err))
		}
		return
	}

	payload := queue.HelpOrderAnsweredPayload{
		HelpOrderID:  order.ID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		Question:     order.Question,
		Answer:       *order.Answer,
	}
	if _, err := s.queue.Enqueue(ctx, queue.JobHelpOrderAnswered, payload); err != nil && s.logger != nil {
		s.logger.Error("enqueue answer notification failed",
			zap.String("help_order_id", order.ID),
			zap.Error(err))
	}
}
