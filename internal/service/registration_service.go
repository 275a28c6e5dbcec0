package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/queue"
	"github.com/spec-kit/gym-service/internal/repository"
	"github.com/spec-kit/gym-service/pkg/timeutil"
	"github.com/spec-kit/gym-service/pkg/util"
)

// RegistrationService manages enrollments. Create and Update run inside a
// per-student transaction lock so two concurrent submissions cannot both
// pass the uniqueness check.
type RegistrationService struct {
	registrations repository.RegistrationRepository
	students      repository.StudentRepository
	plans         repository.PlanRepository
	tx            repository.TxRunner
	queue         queue.Queue
	clock         timeutil.Clock
	logger        *zap.Logger
}

// RegistrationDependencies bundles collaborators for RegistrationService.
type RegistrationDependencies struct {
	RegistrationRepo repository.RegistrationRepository
	StudentRepo      repository.StudentRepository
	PlanRepo         repository.PlanRepository
	TxRunner         repository.TxRunner
	Queue            queue.Queue
	Clock            timeutil.Clock
	Logger           *zap.Logger
}

// RegistrationInput describes a create or update request. StartDate is the
// requested start; the effective start, end date, and price are derived.
type RegistrationInput struct {
	StudentID string
	PlanID    string
	StartDate time.Time
}

// NewRegistrationService constructs the service.
func NewRegistrationService(deps RegistrationDependencies) *RegistrationService {
	clock := deps.Clock
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &RegistrationService{
		registrations: deps.RegistrationRepo,
		students:      deps.StudentRepo,
		plans:         deps.PlanRepo,
		tx:            deps.TxRunner,
		queue:         deps.Queue,
		clock:         clock,
		logger:        deps.Logger,
	}
}

// Create enrolls a student into a plan and queues the confirmation mail.
// The mail is enqueued only after the enrollment commits, so a rolled-back
// registration never produces a notification.
func (s *RegistrationService) Create(ctx context.Context, input RegistrationInput) (*domain.Registration, error) {
	student, err := s.students.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, util.MapError(notFoundAs(err, "student"))
	}
	plan, err := s.plans.GetByID(ctx, input.PlanID)
	if err != nil {
		return nil, util.MapError(notFoundAs(err, "plan"))
	}

	schedule, err := ComputeSchedule(plan, input.StartDate, s.clock.Now())
	if err != nil {
		return nil, err
	}

	reg := &domain.Registration{
		StudentID: student.ID,
		PlanID:    plan.ID,
		StartDate: schedule.StartDate,
		EndDate:   schedule.EndDate,
		Price:     schedule.Price,
	}

	err = s.tx.WithStudentLock(ctx, student.ID, func(ctx context.Context) error {
		active, err := s.registrations.HasActive(ctx, student.ID, "")
		if err != nil {
			return err
		}
		if active {
			return util.NewDuplicateRegistration(student.ID)
		}
		return s.registrations.Create(ctx, reg)
	})
	if err != nil {
		return nil, util.MapError(err)
	}

	s.enqueueConfirmation(ctx, reg, student, plan)
	return reg, nil
}

// Update moves a registration to a new student, plan, or start date,
// recomputing the derived end date and price from the new values.
func (s *RegistrationService) Update(ctx context.Context, id string, input RegistrationInput) (*domain.Registration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(notFoundAs(err, "registration"))
	}

	if _, err := s.students.GetByID(ctx, input.StudentID); err != nil {
		return nil, util.MapError(notFoundAs(err, "student"))
	}
	plan, err := s.plans.GetByID(ctx, input.PlanID)
	if err != nil {
		return nil, util.MapError(notFoundAs(err, "plan"))
	}

	schedule, err := ComputeSchedule(plan, input.StartDate, s.clock.Now())
	if err != nil {
		return nil, err
	}

	reg.StudentID = input.StudentID
	reg.PlanID = plan.ID
	reg.StartDate = schedule.StartDate
	reg.EndDate = schedule.EndDate
	reg.Price = schedule.Price

	err = s.tx.WithStudentLock(ctx, input.StudentID, func(ctx context.Context) error {
		if reg.Active() {
			active, err := s.registrations.HasActive(ctx, input.StudentID, reg.ID)
			if err != nil {
				return err
			}
			if active {
				return util.NewDuplicateRegistration(input.StudentID)
			}
		}
		return s.registrations.Update(ctx, reg)
	})
	if err != nil {
		return nil, util.MapError(err)
	}
	return reg, nil
}

// Get returns one registration.
func (s *RegistrationService) Get(ctx context.Context, id string) (*domain.Registration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(notFoundAs(err, "registration"))
	}
	return reg, nil
}

// List returns registrations newest start first.
func (s *RegistrationService) List(ctx context.Context, limit, offset int) ([]domain.Registration, error) {
	regs, err := s.registrations.List(ctx, limit, offset)
	if err != nil {
		return nil, util.MapError(err)
	}
	return regs, nil
}

// Cancel ends a registration. The row is kept with its cancellation time;
// a second cancel of the same registration is a conflict.
func (s *RegistrationService) Cancel(ctx context.Context, id string) (*domain.Registration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(notFoundAs(err, "registration"))
	}
	if !reg.Active() {
		return nil, util.NewConflict("registration is already canceled", map[string]any{"registration_id": id})
	}

	now := s.clock.Now()
	if err := s.registrations.Cancel(ctx, id, now); err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewConflict("registration is already canceled", map[string]any{"registration_id": id})
		}
		return nil, util.MapError(err)
	}
	reg.CanceledAt = &now
	return reg, nil
}

func (s *RegistrationService) enqueueConfirmation(ctx context.Context, reg *domain.Registration, student *domain.Student, plan *domain.Plan) {
	if s.queue == nil {
		return
	}
	payload := queue.RegistrationConfirmationPayload{
		RegistrationID: reg.ID,
		StudentName:    student.Name,
		StudentEmail:   student.Email,
		PlanTitle:      plan.Title,
		StartDate:      reg.StartDate,
		EndDate:        reg.EndDate,
		Price:          reg.Price.StringFixed(2),
	}
	if _, err := s.queue.Enqueue(ctx, queue.JobRegistrationConfirmation, payload); err != nil && s.logger != nil {
		s.logger.Error("enqueue registration confirmation failed",
			zap.String("registration_id", reg.ID),
			zap.Error(err))
	}
}

// notFoundAs turns a missing-row error into a resource-specific not found.
func notFoundAs(err error, resource string) error {
	if err == pgx.ErrNoRows {
		return util.NewNotFound(resource, nil)
	}
	return err
}
