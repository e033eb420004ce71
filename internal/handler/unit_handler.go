package handler

import (
	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UnitHandler struct {
	service service.UnitService
}

func NewUnitHandler(s service.UnitService) *UnitHandler {
	return &UnitHandler{service: s}
}

// GET /api/v1/units
func (h *UnitHandler) GetUnits(c *fiber.Ctx) error {
	units, err := h.service.GetAllUnits()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(units)
}

// POST /api/v1/units
func (h *UnitHandler) CreateUnit(c *fiber.Ctx) error {
	var unit model.Unit
	if err := c.BodyParser(&unit); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateUnit(&unit, getUserID(c)); err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Unit created", "data": unit})
}

// DELETE /api/v1/units/:id
func (h *UnitHandler) DeleteUnit(c *fiber.Ctx) error {
	unitID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid unit ID"})
	}

	if err := h.service.DeleteUnit(unitID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Unit deleted"})
}
