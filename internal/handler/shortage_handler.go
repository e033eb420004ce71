package handler

import (
	"go-grocery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ShortageHandler struct {
	service service.ShortageService
}

func NewShortageHandler(s service.ShortageService) *ShortageHandler {
	return &ShortageHandler{service: s}
}

// GET /api/v1/shortages
func (h *ShortageHandler) GetShortages(c *fiber.Ctx) error {
	items, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

type AddShortageRequest struct {
	ProductID         string `json:"product_id"`
	RequestedQuantity int    `json:"requested_quantity"`
}

// AddManual creates an entry for a product that is not low on stock yet
// POST /api/v1/shortages
func (h *ShortageHandler) AddManual(c *fiber.Ctx) error {
	var req AddShortageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	productID, err := parseUUID(req.ProductID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	item, err := h.service.AddManual(productID, req.RequestedQuantity, getUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Shortage entry added", "data": item})
}

type MarkSuppliedRequest struct {
	SuppliedQuantity int `json:"supplied_quantity"`
}

// POST /api/v1/shortages/:id/supplied
func (h *ShortageHandler) MarkSupplied(c *fiber.Ctx) error {
	shortageID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shortage ID"})
	}

	var req MarkSuppliedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.MarkSupplied(shortageID, req.SuppliedQuantity, getUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Shortage supplied", "data": product})
}

// DELETE /api/v1/shortages/:id
func (h *ShortageHandler) Remove(c *fiber.Ctx) error {
	shortageID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shortage ID"})
	}

	if err := h.service.Remove(shortageID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Shortage entry removed"})
}

// GetResupplyEstimate returns the resupply cost report
// GET /api/v1/shortages/estimate
func (h *ShortageHandler) GetResupplyEstimate(c *fiber.Ctx) error {
	report, err := h.service.ResupplyEstimate()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
