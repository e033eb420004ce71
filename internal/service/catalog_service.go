package service

import (
	"errors"
	"fmt"
	"time"

	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/pricing"
	"go-grocery-pos/internal/repository"
	"go-grocery-pos/internal/ws"
	"go-grocery-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *ProductUpdateRequest, userID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	UpdateQuantity(id uuid.UUID, newQuantity int, userID string) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetByShortcut(number int) (*model.Product, error)
	SearchProducts(query string) ([]model.Product, error)
}

// ProductUpdateRequest carries a partial update; nil fields keep their stored
// value.
type ProductUpdateRequest struct {
	Name             *string           `json:"name" validate:"omitempty,min=1"`
	Unit             *string           `json:"unit" validate:"omitempty,min=1"`
	Category         *string           `json:"category"`
	Description      *string           `json:"description"`
	CurrentQuantity  *int              `json:"current_quantity" validate:"omitempty,min=0"`
	MinimumQuantity  *int              `json:"minimum_quantity" validate:"omitempty,min=0"`
	PurchasePrice    *float64          `json:"purchase_price" validate:"omitempty,gt=0"`
	PurchaseCurrency *model.Currency   `json:"purchase_currency" validate:"omitempty,oneof=SAR YER"`
	ProfitType       *model.ProfitType `json:"profit_type" validate:"omitempty,oneof=percentage fixed"`
	ProfitValue      *float64          `json:"profit_value"`
	ProfitCurrency   *model.Currency   `json:"profit_currency" validate:"omitempty,oneof=SAR YER"`
	ShortcutNumber   *int              `json:"shortcut_number" validate:"omitempty,min=1,max=999"`
	ExpiryDate       *time.Time        `json:"expiry_date"`
}

type catalogService struct {
	productRepo  repository.ProductRepository
	unitRepo     repository.UnitRepository
	rateRepo     repository.RateRepository
	shortageRepo repository.ShortageRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, uRepo repository.UnitRepository, rRepo repository.RateRepository, sRepo repository.ShortageRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		unitRepo:     uRepo,
		rateRepo:     rRepo,
		shortageRepo: sRepo,
		db:           db,
		wsHub:        hub,
	}
}

// refreshDerived recomputes both derived fields from the stored inputs. Every
// mutation path funnels through this one helper so the invariants hold no
// matter which operation triggered the change.
func refreshDerived(p *model.Product, rate float64) {
	p.CurrentSellingPrice = pricing.SellingPriceYER(pricing.InputsFor(p), rate)
	p.RefreshLowStock()
}

func (s *catalogService) currentRate() (*model.ExchangeRate, error) {
	rate, err := s.rateRepo.Latest()
	if err != nil {
		return nil, ErrRateNotSet
	}
	return rate, nil
}

func (s *catalogService) CreateProduct(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if _, err := s.unitRepo.FindByName(req.Unit); err != nil {
		return ErrUnitNotFound
	}

	rate, err := s.currentRate()
	if err != nil {
		return err
	}

	refreshDerived(req, rate.Rate)
	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Checked inside the insert transaction so a concurrent create maps
		// to ErrDuplicateShortcut instead of a raw unique-index error.
		if req.ShortcutNumber != nil {
			var other model.Product
			err := tx.First(&other, "shortcut_number = ?", *req.ShortcutNumber).Error
			if err == nil {
				return ErrDuplicateShortcut
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		return syncShortage(tx, req)
	})
	if err != nil {
		return err
	}

	s.broadcast("product_created", fmt.Sprintf("Product '%s' created", req.Name), req)
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductUpdateRequest, userID string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	var updated *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&existing, "id = ?", id).Error; err != nil {
			return ErrProductNotFound
		}

		if req.Unit != nil {
			var unit model.Unit
			if err := tx.First(&unit, "name = ?", *req.Unit).Error; err != nil {
				return ErrUnitNotFound
			}
			existing.Unit = *req.Unit
		}
		if req.ShortcutNumber != nil && (existing.ShortcutNumber == nil || *existing.ShortcutNumber != *req.ShortcutNumber) {
			var other model.Product
			err := tx.First(&other, "shortcut_number = ?", *req.ShortcutNumber).Error
			if err == nil && other.ID != existing.ID {
				return ErrDuplicateShortcut
			}
			existing.ShortcutNumber = req.ShortcutNumber
		}

		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Category != nil {
			existing.Category = *req.Category
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.CurrentQuantity != nil {
			existing.CurrentQuantity = *req.CurrentQuantity
		}
		if req.MinimumQuantity != nil {
			existing.MinimumQuantity = *req.MinimumQuantity
		}
		if req.PurchasePrice != nil {
			existing.PurchasePrice = *req.PurchasePrice
		}
		if req.PurchaseCurrency != nil {
			existing.PurchaseCurrency = *req.PurchaseCurrency
		}
		if req.ProfitType != nil {
			existing.ProfitType = *req.ProfitType
		}
		if req.ProfitValue != nil {
			existing.ProfitValue = *req.ProfitValue
		}
		if req.ProfitCurrency != nil {
			existing.ProfitCurrency = *req.ProfitCurrency
		}
		if req.ExpiryDate != nil {
			existing.ExpiryDate = req.ExpiryDate
		}

		// Recompute at the current rate. Edits never write price-log entries;
		// only rate changes do.
		var rate model.ExchangeRate
		if err := tx.Order("created_at DESC").First(&rate).Error; err != nil {
			return ErrRateNotSet
		}
		refreshDerived(&existing, rate.Rate)

		existing.UpdatedBy = userID
		existing.UpdatedByUserID = &userID
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		if err := syncShortage(tx, &existing); err != nil {
			return err
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("product_updated", fmt.Sprintf("Product '%s' updated", updated.Name), updated)
	return updated, nil
}

// DeleteProduct removes the product and cascades any pending shortage entry.
// Deleting an unknown id fails with ErrProductNotFound rather than being a
// silent no-op.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	var name string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		name = existing.Name

		if err := s.shortageRepo.DeleteByProductID(tx, id); err != nil {
			return err
		}
		return s.productRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}

	s.broadcast("product_deleted", fmt.Sprintf("Product '%s' deleted", name), idPayload(id))
	return nil
}

func (s *catalogService) UpdateQuantity(id uuid.UUID, newQuantity int, userID string) (*model.Product, error) {
	if newQuantity < 0 {
		return nil, ErrNegativeQuantity
	}
	return s.UpdateProduct(id, &ProductUpdateRequest{CurrentQuantity: &newQuantity}, userID)
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) GetByShortcut(number int) (*model.Product, error) {
	product, err := s.productRepo.FindByShortcut(number)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) SearchProducts(query string) ([]model.Product, error) {
	return s.productRepo.Search(query)
}

func (s *catalogService) broadcast(action, message string, payload interface{}) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.BroadcastEvent(ws.Event{Type: "catalog_update", Action: action, Message: message, Payload: payload})
}

func idPayload(id uuid.UUID) map[string]interface{} {
	return map[string]interface{}{"id": id}
}
