package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/api/dto"
	"github.com/spec-kit/gym-service/internal/service"
	"github.com/spec-kit/gym-service/pkg/util"
)

// RegistrationsHandler exposes enrollment endpoints.
type RegistrationsHandler struct {
	registrations *service.RegistrationService
}

// NewRegistrationsHandler constructs the handler.
func NewRegistrationsHandler(registrations *service.RegistrationService) *RegistrationsHandler {
	return &RegistrationsHandler{registrations: registrations}
}

// Create handles POST /registrations.
func (h *RegistrationsHandler) Create(c *fiber.Ctx) error {
	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.StudentID == "" || req.PlanID == "" || req.StartDate.IsZero() {
		return util.NewValidationError("student_id, plan_id and start_date required", nil)
	}

	reg, err := h.registrations.Create(c.UserContext(), service.RegistrationInput{
		StudentID: req.StudentID,
		PlanID:    req.PlanID,
		StartDate: req.StartDate,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewRegistrationResponse(reg)})
}

// Update handles PUT /registrations/:id.
func (h *RegistrationsHandler) Update(c *fiber.Ctx) error {
	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.StudentID == "" || req.PlanID == "" || req.StartDate.IsZero() {
		return util.NewValidationError("student_id, plan_id and start_date required", nil)
	}

	reg, err := h.registrations.Update(c.UserContext(), c.Params("id"), service.RegistrationInput{
		StudentID: req.StudentID,
		PlanID:    req.PlanID,
		StartDate: req.StartDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistrationResponse(reg)})
}

// Get handles GET /registrations/:id.
func (h *RegistrationsHandler) Get(c *fiber.Ctx) error {
	reg, err := h.registrations.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistrationResponse(reg)})
}

// List handles GET /registrations.
func (h *RegistrationsHandler) List(c *fiber.Ctx) error {
	regs, err := h.registrations.List(c.UserContext(), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistrationListResponse(regs)})
}

// Delete handles DELETE /registrations/:id by canceling the enrollment.
func (h *RegistrationsHandler) Delete(c *fiber.Ctx) error {
	reg, err := h.registrations.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistrationResponse(reg)})
}
