package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/repository"
	"github.com/spec-kit/gym-service/pkg/util"
)

// PlanService manages subscription plans.
type PlanService struct {
	plans repository.PlanRepository
}

// PlanInput describes a plan create or update request. Price is the exact
// monthly price as a decimal string.
type PlanInput struct {
	Title          string
	DurationMonths int
	PricePerMonth  string
}

// NewPlanService constructs the service.
func NewPlanService(plans repository.PlanRepository) *PlanService {
	return &PlanService{plans: plans}
}

// Create adds a plan with a unique title.
func (s *PlanService) Create(ctx context.Context, input PlanInput) (*domain.Plan, error) {
	plan, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.plans.GetByTitle(ctx, plan.Title)
	if err != nil && err != pgx.ErrNoRows {
		return nil, util.MapError(err)
	}
	if existing != nil {
		return nil, util.NewConflict("plan title already in use", map[string]any{"title": plan.Title})
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, util.MapError(err)
	}
	return plan, nil
}

// Update changes a plan's title, duration, or price. Existing
// registrations keep their already-derived end dates and prices.
func (s *PlanService) Update(ctx context.Context, id string, input PlanInput) (*domain.Plan, error) {
	current, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(notFoundAs(err, "plan"))
	}

	plan, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if plan.Title != current.Title {
		existing, err := s.plans.GetByTitle(ctx, plan.Title)
		if err != nil && err != pgx.ErrNoRows {
			return nil, util.MapError(err)
		}
		if existing != nil {
			return nil, util.NewConflict("plan title already in use", map[string]any{"title": plan.Title})
		}
	}

	plan.ID = current.ID
	plan.CreatedAt = current.CreatedAt
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, util.MapError(err)
	}
	return plan, nil
}

// Get returns one plan.
func (s *PlanService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(notFoundAs(err, "plan"))
	}
	return plan, nil
}

// List returns all plans ordered by duration.
func (s *PlanService) List(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return plans, nil
}

// Delete removes a plan.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	if _, err := s.plans.GetByID(ctx, id); err != nil {
		return util.MapError(notFoundAs(err, "plan"))
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		return util.MapError(err)
	}
	return nil
}

func (s *PlanService) validate(input PlanInput) (*domain.Plan, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, util.NewValidationError("title is required", nil)
	}
	if input.DurationMonths < 1 {
		return nil, util.NewValidationError("duration must be at least one month", map[string]any{"duration": input.DurationMonths})
	}
	price, err := decimal.NewFromString(strings.TrimSpace(input.PricePerMonth))
	if err != nil {
		return nil, util.NewValidationError("price must be a decimal number", map[string]any{"price": input.PricePerMonth})
	}
	if price.IsNegative() {
		return nil, util.NewValidationError("price must not be negative", map[string]any{"price": input.PricePerMonth})
	}

	return &domain.Plan{
		Title:          title,
		DurationMonths: input.DurationMonths,
		PricePerMonth:  price,
	}, nil
}
