package handlers

import (
	"github.com/gofiber/fiber/v2"

	"emporium/internal/services"
)

type AccountHandler struct {
	Accounts *services.AccountService
}

func (h *AccountHandler) Get(c *fiber.Ctx) error {
	a, err := h.Accounts.Get(accountID(c))
	if err != nil {
		return fail(c, "account.get", err)
	}
	return c.JSON(a)
}

type updateAccountRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var req updateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	a, err := h.Accounts.UpdateName(accountID(c), req.FirstName, req.LastName)
	if err != nil {
		return fail(c, "account.update", err)
	}
	return c.JSON(a)
}
