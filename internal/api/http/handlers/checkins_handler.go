package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/api/dto"
	"github.com/spec-kit/gym-service/internal/service"
)

// CheckinsHandler exposes attendance endpoints.
type CheckinsHandler struct {
	checkins *service.CheckinService
}

// NewCheckinsHandler constructs the handler.
func NewCheckinsHandler(checkins *service.CheckinService) *CheckinsHandler {
	return &CheckinsHandler{checkins: checkins}
}

// Create handles POST /students/:id/checkins.
func (h *CheckinsHandler) Create(c *fiber.Ctx) error {
	checkin, err := h.checkins.Record(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCheckinResponse(checkin)})
}

// List handles GET /students/:id/checkins.
func (h *CheckinsHandler) List(c *fiber.Ctx) error {
	checkins, err := h.checkins.List(c.UserContext(), c.Params("id"),
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCheckinListResponse(checkins)})
}
