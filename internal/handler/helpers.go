package handler

import (
	"errors"

	"go-grocery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull user info from the JWT context (set by the auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// writeError maps domain failures to status codes; anything unrecognized is a
// client error since services validate before touching the store.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrUnitNotFound),
		errors.Is(err, service.ErrShortageNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateShortcut),
		errors.Is(err, service.ErrDuplicateUnit),
		errors.Is(err, service.ErrDuplicateShortage),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrUnitInUse):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
}
