package handlers

import (
	"github.com/gofiber/fiber/v2"

	"emporium/internal/services"
	"emporium/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.List(accountID(c))
	if err != nil {
		return fail(c, "orders.list", err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("orderId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	o, err := h.Orders.Get(accountID(c), id)
	if err != nil {
		return fail(c, "orders.get", err)
	}
	return c.JSON(o)
}
