package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/api/dto"
	"github.com/spec-kit/gym-service/internal/service"
	"github.com/spec-kit/gym-service/pkg/util"
)

// HelpOrdersHandler exposes question and answer endpoints.
type HelpOrdersHandler struct {
	helpOrders *service.HelpOrderService
}

// NewHelpOrdersHandler constructs the handler.
func NewHelpOrdersHandler(helpOrders *service.HelpOrderService) *HelpOrdersHandler {
	return &HelpOrdersHandler{helpOrders: helpOrders}
}

// Create handles POST /students/:id/help-orders.
func (h *HelpOrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.HelpOrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	order, err := h.helpOrders.Create(c.UserContext(), c.Params("id"), req.Question)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewHelpOrderResponse(order)})
}

// ListForStudent handles GET /students/:id/help-orders.
func (h *HelpOrdersHandler) ListForStudent(c *fiber.Ctx) error {
	orders, err := h.helpOrders.ListForStudent(c.UserContext(), c.Params("id"),
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewHelpOrderListResponse(orders)})
}

// ListUnanswered handles GET /help-orders.
func (h *HelpOrdersHandler) ListUnanswered(c *fiber.Ctx) error {
	orders, err := h.helpOrders.ListUnanswered(c.UserContext(),
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewHelpOrderListResponse(orders)})
}

// Answer handles PUT /help-orders/:id/answer.
func (h *HelpOrdersHandler) Answer(c *fiber.Ctx) error {
	var req dto.HelpOrderAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	order, err := h.helpOrders.Answer(c.UserContext(), c.Params("id"), req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewHelpOrderResponse(order)})
}
