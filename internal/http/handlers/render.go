package handlers

import (
	"github.com/gofiber/fiber/v2"

	"emporium/internal/apperr"
	applog "emporium/internal/log"
)

// fail maps the error taxonomy to HTTP statuses. Only errors without a kind
// are logged as server errors; the rest are ordinary client outcomes.
func fail(c *fiber.Ctx, action string, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput, apperr.KindInvalidOperation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case apperr.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
}
