package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/api/dto"
	"github.com/spec-kit/gym-service/internal/service"
	"github.com/spec-kit/gym-service/pkg/util"
)

// PlansHandler exposes plan management endpoints.
type PlansHandler struct {
	plans *service.PlanService
}

// NewPlansHandler constructs the handler.
func NewPlansHandler(plans *service.PlanService) *PlansHandler {
	return &PlansHandler{plans: plans}
}

// Create handles POST /plans.
func (h *PlansHandler) Create(c *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	plan, err := h.plans.Create(c.UserContext(), service.PlanInput{
		Title:          req.Title,
		DurationMonths: req.Duration,
		PricePerMonth:  req.Price,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPlanResponse(plan)})
}

// Update handles PUT /plans/:id.
func (h *PlansHandler) Update(c *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	plan, err := h.plans.Update(c.UserContext(), c.Params("id"), service.PlanInput{
		Title:          req.Title,
		DurationMonths: req.Duration,
		PricePerMonth:  req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanResponse(plan)})
}

// Get handles GET /plans/:id.
func (h *PlansHandler) Get(c *fiber.Ctx) error {
	plan, err := h.plans.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanResponse(plan)})
}

// List handles GET /plans.
func (h *PlansHandler) List(c *fiber.Ctx) error {
	plans, err := h.plans.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanListResponse(plans)})
}

// Delete handles DELETE /plans/:id.
func (h *PlansHandler) Delete(c *fiber.Ctx) error {
	if err := h.plans.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
