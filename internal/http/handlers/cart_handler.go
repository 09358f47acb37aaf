package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "emporium/internal/log"
	"emporium/internal/mail"
	"emporium/internal/services"
	"emporium/internal/validate"
)

type CartHandler struct {
	Carts    *services.CartService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
	Accounts *services.AccountService
	Mailer   *mail.Mailer
}

// cartRequest distinguishes a missing item list (pointer nil) from an
// explicitly empty one; replace-cart treats the two differently.
type cartRequest struct {
	Name  string                `json:"name"`
	Items *[]services.ItemInput `json:"items"`
}

func (r cartRequest) items() []services.ItemInput {
	if r.Items == nil {
		return nil
	}
	if *r.Items == nil {
		return []services.ItemInput{}
	}
	return *r.Items
}

func (h *CartHandler) List(c *fiber.Ctx) error {
	carts, err := h.Carts.List(accountID(c))
	if err != nil {
		return fail(c, "carts.list", err)
	}
	return c.JSON(carts)
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("cartId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cart not found"})
	}
	cart, err := h.Carts.Get(accountID(c), id)
	if err != nil {
		return fail(c, "carts.get", err)
	}
	return c.JSON(cart)
}

func (h *CartHandler) Create(c *fiber.Ctx) error {
	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	cart, err := h.Carts.Create(accountID(c), req.Name, req.items())
	if err != nil {
		return fail(c, "carts.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

func (h *CartHandler) Replace(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("cartId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cart not found"})
	}
	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	cart, err := h.Carts.Replace(accountID(c), id, req.Name, req.items())
	if err != nil {
		return fail(c, "carts.replace", err)
	}
	return c.JSON(cart)
}

func (h *CartHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("cartId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cart not found"})
	}
	deleted, err := h.Carts.Delete(accountID(c), id)
	if err != nil {
		return fail(c, "carts.delete", err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cart not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type checkoutRequest struct {
	AddressID int64 `json:"addressId"`
}

func (h *CartHandler) CheckoutCart(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("cartId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cart not found"})
	}
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	acct := accountID(c)
	orderID, err := h.Checkout.Checkout(acct, id, req.AddressID)
	if err != nil {
		return fail(c, "carts.checkout", err)
	}
	applog.Audit(c, "carts.checkout", map[string]any{"cart": id, "order": orderID})

	h.sendConfirmation(c, acct, orderID)

	return c.JSON(fiber.Map{"orderId": orderID})
}

// sendConfirmation is best-effort: the order is committed, so email failures
// only get logged.
func (h *CartHandler) sendConfirmation(c *fiber.Ctx, acct, orderID int64) {
	order, err := h.Orders.Get(acct, orderID)
	if err != nil {
		applog.Error(c, "carts.checkout.mail", err, nil)
		return
	}
	a, err := h.Accounts.Get(acct)
	if err != nil {
		applog.Error(c, "carts.checkout.mail", err, nil)
		return
	}
	if err := h.Mailer.OrderConfirmation(a.Email, a.FirstName+" "+a.LastName, order); err != nil {
		applog.Error(c, "carts.checkout.mail", err, map[string]any{"order": orderID})
	}
}
