package repository

import (
	"go-grocery-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RateRepository interface {
	Create(tx *gorm.DB, rate *model.ExchangeRate) error
	Latest() (*model.ExchangeRate, error)
	History() ([]model.ExchangeRate, error)
	CreateLog(tx *gorm.DB, entry *model.PriceUpdateLog) error
	FindLogs(productID *uuid.UUID) ([]model.PriceUpdateLog, error)
}

type rateRepo struct {
	db *gorm.DB
}

func NewRateRepo(db *gorm.DB) RateRepository {
	return &rateRepo{db}
}

// Create appends a ledger entry. It takes a tx handle so the new rate and the
// revaluation it triggers commit together.
func (r *rateRepo) Create(tx *gorm.DB, rate *model.ExchangeRate) error {
	return tx.Create(rate).Error
}

func (r *rateRepo) Latest() (*model.ExchangeRate, error) {
	var rate model.ExchangeRate
	err := r.db.Order("created_at DESC").First(&rate).Error
	return &rate, err
}

func (r *rateRepo) History() ([]model.ExchangeRate, error) {
	var rates []model.ExchangeRate
	err := r.db.Order("created_at DESC").Find(&rates).Error
	return rates, err
}

func (r *rateRepo) CreateLog(tx *gorm.DB, entry *model.PriceUpdateLog) error {
	return tx.Create(entry).Error
}

func (r *rateRepo) FindLogs(productID *uuid.UUID) ([]model.PriceUpdateLog, error) {
	query := r.db.Preload("ExchangeRate").Order("created_at DESC")
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	var logs []model.PriceUpdateLog
	err := query.Find(&logs).Error
	return logs, err
}
