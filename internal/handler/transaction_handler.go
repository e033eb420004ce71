package handler

import (
	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// POST /api/v1/sales
func (h *TransactionHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.ProcessSale(&req, getUserID(c), getUserName(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": transaction})
}

// POST /api/v1/purchases
func (h *TransactionHandler) CreatePurchase(c *fiber.Ctx) error {
	var req service.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.ProcessPurchase(&req, getUserID(c), getUserName(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": transaction})
}

// GET /api/v1/transactions?type=SALE|PURCHASE
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	var txType *model.TransactionType
	switch c.Query("type") {
	case "SALE":
		t := model.TxSale
		txType = &t
	case "PURCHASE":
		t := model.TxPurchase
		txType = &t
	}

	transactions, err := h.service.GetAllTransactions(txType)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}

// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.GetTransactionByID(txID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(transaction)
}
