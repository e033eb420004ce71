package service

import (
	"fmt"
	"math"

	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/pricing"
	"go-grocery-pos/internal/repository"
	"go-grocery-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RateService interface {
	SetExchangeRate(newRate float64, userID string) (*model.ExchangeRate, *RevaluationResult, error)
	CurrentRate() (*model.ExchangeRate, error)
	RateHistory() ([]model.ExchangeRate, error)
	PriceLog(productID *uuid.UUID) ([]model.PriceUpdateLog, error)
}

// RevaluationResult summarizes one full-catalog repricing.
type RevaluationResult struct {
	ProductsChecked int `json:"products_checked"`
	PricesChanged   int `json:"prices_changed"`
}

type rateService struct {
	rateRepo    repository.RateRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewRateService(rRepo repository.RateRepository, pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) RateService {
	return &rateService{
		rateRepo:    rRepo,
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
	}
}

// SetExchangeRate appends a ledger entry and reprices the whole catalog in one
// database transaction: either the new rate and every recomputed price commit
// together, or nothing changes. Each product whose selling price actually
// moved gets one PriceUpdateLog entry; unchanged products are left untouched.
func (s *rateService) SetExchangeRate(newRate float64, userID string) (*model.ExchangeRate, *RevaluationResult, error) {
	if newRate <= 0 || math.IsNaN(newRate) || math.IsInf(newRate, 0) {
		return nil, nil, ErrInvalidRate
	}

	entry := &model.ExchangeRate{Rate: newRate}
	entry.CreatedBy = userID
	entry.UpdatedBy = userID

	result := &RevaluationResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.rateRepo.Create(tx, entry); err != nil {
			return err
		}

		products, err := s.productRepo.FindAllLocked(tx)
		if err != nil {
			return err
		}

		for i := range products {
			p := &products[i]
			result.ProductsChecked++

			oldPrice := p.CurrentSellingPrice
			newPrice := pricing.SellingPriceYER(pricing.InputsFor(p), newRate)
			if newPrice == oldPrice {
				continue
			}

			log := &model.PriceUpdateLog{
				ProductID:      p.ID,
				OldPrice:       oldPrice,
				NewPrice:       newPrice,
				ExchangeRateID: entry.ID,
			}
			log.CreatedBy = userID
			log.UpdatedBy = userID
			if err := s.rateRepo.CreateLog(tx, log); err != nil {
				return err
			}

			p.CurrentSellingPrice = newPrice
			p.UpdatedBy = userID
			if err := tx.Save(p).Error; err != nil {
				return err
			}
			result.PricesChanged++
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastEvent(ws.Event{
			Type:    "rate_changed",
			Action:  "revaluation",
			Message: fmt.Sprintf("Exchange rate set to %.2f YER/SAR, %d prices updated", newRate, result.PricesChanged),
			Payload: map[string]interface{}{
				"rate":           entry.Rate,
				"rate_id":        entry.ID,
				"prices_changed": result.PricesChanged,
			},
		})
	}

	return entry, result, nil
}

func (s *rateService) CurrentRate() (*model.ExchangeRate, error) {
	rate, err := s.rateRepo.Latest()
	if err != nil {
		return nil, ErrRateNotSet
	}
	return rate, nil
}

func (s *rateService) RateHistory() ([]model.ExchangeRate, error) {
	return s.rateRepo.History()
}

func (s *rateService) PriceLog(productID *uuid.UUID) ([]model.PriceUpdateLog, error) {
	return s.rateRepo.FindLogs(productID)
}
