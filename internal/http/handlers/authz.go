package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "emporium/internal/log"
	"emporium/internal/services"
)

// RequireAccount resolves the session cookie to an account and stores the
// account id in Locals. Downstream handlers consume only that id.
func RequireAccount(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not logged in"})
		}
		a, err := auth.CurrentAccount(sid)
		if err != nil || a == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not logged in"})
		}
		c.Locals("accountID", a.ID)
		c.Locals("account", a)
		return c.Next()
	}
}

// RequireAdmin additionally gates on the admin flag.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not logged in"})
		}
		a, err := auth.CurrentAccount(sid)
		if err != nil || a == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not logged in"})
		}
		if !a.Admin {
			applog.Security(c, "access.denied.admin", map[string]any{"account": a.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin only"})
		}
		c.Locals("accountID", a.ID)
		c.Locals("account", a)
		return c.Next()
	}
}

func accountID(c *fiber.Ctx) int64 {
	id, _ := c.Locals("accountID").(int64)
	return id
}
