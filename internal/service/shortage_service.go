package service

import (
	"errors"
	"fmt"

	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/pricing"
	"go-grocery-pos/internal/repository"
	"go-grocery-pos/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShortageService interface {
	GetAll() ([]model.ShortageItem, error)
	AddManual(productID uuid.UUID, requestedQuantity int, userID string) (*model.ShortageItem, error)
	MarkSupplied(shortageID uuid.UUID, suppliedQuantity int, userID string) (*model.Product, error)
	Remove(shortageID uuid.UUID) error
	ResupplyEstimate() (*ResupplyEstimate, error)
}

// ResupplyEstimate is the shortage report: what to restock and what it would
// cost. Costs are normalized to YER at the current rate; the totals are summed
// with decimals so long reports do not accumulate float drift.
type ResupplyEstimate struct {
	Items     []ResupplyLine  `json:"items"`
	TotalCost decimal.Decimal `json:"total_cost"` // YER
}

type ResupplyLine struct {
	ShortageID        uuid.UUID       `json:"shortage_id"`
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Unit              string          `json:"unit"`
	RequestedQuantity int             `json:"requested_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`      // YER
	EstimatedCost     decimal.Decimal `json:"estimated_cost"` // YER
	AddedManually     bool            `json:"added_manually"`
}

type shortageService struct {
	shortageRepo repository.ShortageRepository
	productRepo  repository.ProductRepository
	rateRepo     repository.RateRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewShortageService(sRepo repository.ShortageRepository, pRepo repository.ProductRepository, rRepo repository.RateRepository, db *gorm.DB, hub *ws.Hub) ShortageService {
	return &shortageService{
		shortageRepo: sRepo,
		productRepo:  pRepo,
		rateRepo:     rRepo,
		db:           db,
		wsHub:        hub,
	}
}

// suggestedRestock proposes topping the stock back up to twice the minimum,
// but never suggests less than the minimum itself.
func suggestedRestock(minimum, current int) int {
	if v := minimum*2 - current; v > minimum {
		return v
	}
	return minimum
}

// syncShortage creates a shortage entry for a low-stock product when none
// exists yet. It never removes entries: manually added items and overridden
// quantities survive incidental catalog edits until supplied or removed.
// Must run inside the same tx as the mutation that changed the stock level.
func syncShortage(tx *gorm.DB, p *model.Product) error {
	if !p.IsLowStock {
		return nil
	}

	var existing model.ShortageItem
	err := tx.First(&existing, "product_id = ?", p.ID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := model.ShortageItem{
		ProductID:         p.ID,
		ProductName:       p.Name,
		CurrentQuantity:   p.CurrentQuantity,
		MinimumQuantity:   p.MinimumQuantity,
		Unit:              p.Unit,
		RequestedQuantity: suggestedRestock(p.MinimumQuantity, p.CurrentQuantity),
	}
	return tx.Create(&item).Error
}

func (s *shortageService) GetAll() ([]model.ShortageItem, error) {
	return s.shortageRepo.FindAll()
}

func (s *shortageService) AddManual(productID uuid.UUID, requestedQuantity int, userID string) (*model.ShortageItem, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if existing, err := s.shortageRepo.FindByProductID(s.db, productID); err == nil && existing != nil {
		return nil, ErrDuplicateShortage
	}

	if requestedQuantity <= 0 {
		requestedQuantity = suggestedRestock(product.MinimumQuantity, product.CurrentQuantity)
	}

	item := &model.ShortageItem{
		ProductID:         product.ID,
		ProductName:       product.Name,
		CurrentQuantity:   product.CurrentQuantity,
		MinimumQuantity:   product.MinimumQuantity,
		Unit:              product.Unit,
		RequestedQuantity: requestedQuantity,
		AddedManually:     true,
	}
	item.CreatedBy = userID
	item.UpdatedBy = userID

	if err := s.shortageRepo.Create(s.db, item); err != nil {
		return nil, err
	}

	s.broadcast("shortage_added", fmt.Sprintf("'%s' added to shortage list", product.Name), item)
	return item, nil
}

// MarkSupplied sets the product's stock to the supplied quantity (an absolute
// set, not an increment), removes the entry and re-runs the low-stock check:
// supplying less than the minimum immediately recreates an entry.
func (s *shortageService) MarkSupplied(shortageID uuid.UUID, suppliedQuantity int, userID string) (*model.Product, error) {
	if suppliedQuantity < 0 {
		return nil, ErrNegativeQuantity
	}

	var supplied *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.ShortageItem
		if err := tx.First(&item, "id = ?", shortageID).Error; err != nil {
			return ErrShortageNotFound
		}

		var product model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", item.ProductID).Error; err != nil {
			return ErrProductNotFound
		}

		product.CurrentQuantity = suppliedQuantity
		product.RefreshLowStock()
		product.UpdatedBy = userID
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Delete(&model.ShortageItem{}, "id = ?", item.ID).Error; err != nil {
			return err
		}

		if err := syncShortage(tx, &product); err != nil {
			return err
		}

		supplied = &product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("shortage_supplied", fmt.Sprintf("'%s' restocked to %d %s", supplied.Name, supplied.CurrentQuantity, supplied.Unit), supplied)
	return supplied, nil
}

func (s *shortageService) Remove(shortageID uuid.UUID) error {
	if _, err := s.shortageRepo.FindByID(shortageID); err != nil {
		return ErrShortageNotFound
	}
	return s.shortageRepo.Delete(s.db, shortageID)
}

func (s *shortageService) ResupplyEstimate() (*ResupplyEstimate, error) {
	items, err := s.shortageRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.Latest()
	if err != nil {
		return nil, ErrRateNotSet
	}

	report := &ResupplyEstimate{Items: []ResupplyLine{}, TotalCost: decimal.Zero}
	for _, item := range items {
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			// Product deletion cascades shortage removal, so this should not
			// happen; skip rather than fail the whole report.
			continue
		}
		product.NormalizePricingFields()

		unitCost := decimal.NewFromFloat(pricing.ToYER(product.PurchasePrice, product.PurchaseCurrency, rate.Rate))
		lineCost := unitCost.Mul(decimal.NewFromInt(int64(item.RequestedQuantity)))

		report.Items = append(report.Items, ResupplyLine{
			ShortageID:        item.ID,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			Unit:              item.Unit,
			RequestedQuantity: item.RequestedQuantity,
			UnitCost:          unitCost,
			EstimatedCost:     lineCost,
			AddedManually:     item.AddedManually,
		})
		report.TotalCost = report.TotalCost.Add(lineCost)
	}

	return report, nil
}

func (s *shortageService) broadcast(action, message string, payload interface{}) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.BroadcastEvent(ws.Event{Type: "shortage_update", Action: action, Message: message, Payload: payload})
}
