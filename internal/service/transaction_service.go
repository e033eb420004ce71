package service

import (
	"fmt"

	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/pricing"
	"go-grocery-pos/internal/repository"
	"go-grocery-pos/internal/ws"
	"go-grocery-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionService interface {
	ProcessSale(req *SaleRequest, userID, userName string) (*model.Transaction, error)
	ProcessPurchase(req *PurchaseRequest, userID, userName string) (*model.Transaction, error)
	GetAllTransactions(txType *model.TransactionType) ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
}

// TransactionLine is one "quantity + product" pair. Voice input parses into
// the same shape before entering here.
type TransactionLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type SaleRequest struct {
	Items []TransactionLine `json:"items" validate:"required,min=1,dive"`
	Note  string            `json:"note"`
}

type PurchaseRequest struct {
	Items    []TransactionLine `json:"items" validate:"required,min=1,dive"`
	Supplier string            `json:"supplier"`
	Note     string            `json:"note"`
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	rateRepo        repository.RateRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewTransactionService(tRepo repository.TransactionRepository, pRepo repository.ProductRepository, rRepo repository.RateRepository, db *gorm.DB, hub *ws.Hub) TransactionService {
	return &transactionService{
		transactionRepo: tRepo,
		productRepo:     pRepo,
		rateRepo:        rRepo,
		db:              db,
		wsHub:           hub,
	}
}

// ProcessSale decrements stock per line item and records the transaction.
// Any failing line rolls back the whole sale.
func (s *transactionService) ProcessSale(req *SaleRequest, userID, userName string) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	return s.record(model.TxSale, req.Items, "", req.Note, userID, userName)
}

// ProcessPurchase increments stock per line item.
func (s *transactionService) ProcessPurchase(req *PurchaseRequest, userID, userName string) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	return s.record(model.TxPurchase, req.Items, req.Supplier, req.Note, userID, userName)
}

func (s *transactionService) record(txType model.TransactionType, lines []TransactionLine, supplier, note, userID, userName string) (*model.Transaction, error) {
	rate, err := s.rateRepo.Latest()
	if err != nil {
		return nil, ErrRateNotSet
	}

	transaction := &model.Transaction{
		Type:     txType,
		Supplier: supplier,
		Note:     note,
	}
	transaction.CreatedBy = userID
	transaction.UpdatedBy = userID
	transaction.CreatedByUserID = &userID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}

		for _, line := range lines {
			var product model.Product
			if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", line.ProductID).Error; err != nil {
				return ErrProductNotFound
			}

			switch txType {
			case model.TxSale:
				if product.CurrentQuantity < line.Quantity {
					return fmt.Errorf("%w: '%s' has %d left", ErrInsufficientStock, product.Name, product.CurrentQuantity)
				}
				product.CurrentQuantity -= line.Quantity
			case model.TxPurchase:
				product.CurrentQuantity += line.Quantity
			}

			product.RefreshLowStock()
			product.UpdatedBy = userID
			product.UpdatedByUserID = &userID
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			if err := syncShortage(tx, &product); err != nil {
				return err
			}

			// Sales snapshot the selling price; purchases snapshot the
			// purchase cost normalized to YER at the current rate.
			unitPrice := product.CurrentSellingPrice
			if txType == model.TxPurchase {
				product.NormalizePricingFields()
				unitPrice = pricing.ToYER(product.PurchasePrice, product.PurchaseCurrency, rate.Rate)
			}

			item := model.TransactionItem{
				TransactionID: transaction.ID,
				ProductID:     product.ID,
				ProductName:   product.Name,
				Unit:          product.Unit,
				Quantity:      line.Quantity,
				UnitPrice:     unitPrice,
				LineTotal:     unitPrice * float64(line.Quantity),
			}
			item.CreatedBy = userID
			item.UpdatedBy = userID
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			transaction.Items = append(transaction.Items, item)
			transaction.TotalAmount += item.LineTotal
		}

		// Update through a bare model: saving the loaded struct would run the
		// association callback and insert every item a second time.
		return tx.Model(&model.Transaction{}).Where("id = ?", transaction.ID).
			Update("total_amount", transaction.TotalAmount).Error
	})
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		verb := "sold"
		if txType == model.TxPurchase {
			verb = "purchased"
		}
		s.wsHub.BroadcastEvent(ws.Event{
			Type:    "stock_update",
			Action:  "transaction_created",
			Message: fmt.Sprintf("%s %s %d item line(s)", userName, verb, len(transaction.Items)),
			Payload: transaction,
		})
	}

	return transaction, nil
}

func (s *transactionService) GetAllTransactions(txType *model.TransactionType) ([]model.Transaction, error) {
	return s.transactionRepo.FindAll(txType)
}

func (s *transactionService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	return transaction, nil
}
