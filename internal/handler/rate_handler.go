package handler

import (
	"go-grocery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RateHandler struct {
	service service.RateService
}

func NewRateHandler(s service.RateService) *RateHandler {
	return &RateHandler{service: s}
}

type SetRateRequest struct {
	Rate float64 `json:"rate"`
}

// SetExchangeRate appends a ledger entry and reprices the whole catalog
// PUT /api/v1/exchange-rate
func (h *RateHandler) SetExchangeRate(c *fiber.Ctx) error {
	var req SetRateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	rate, result, err := h.service.SetExchangeRate(req.Rate, getUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Exchange rate updated",
		"rate":        rate,
		"revaluation": result,
	})
}

// GET /api/v1/exchange-rate
func (h *RateHandler) GetCurrentRate(c *fiber.Ctx) error {
	rate, err := h.service.CurrentRate()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rate)
}

// GET /api/v1/exchange-rate/history
func (h *RateHandler) GetRateHistory(c *fiber.Ctx) error {
	rates, err := h.service.RateHistory()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(rates)
}

// GET /api/v1/price-logs?product_id=...
func (h *RateHandler) GetPriceLogs(c *fiber.Ctx) error {
	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		productID = &id
	}

	logs, err := h.service.PriceLog(productID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(logs)
}
