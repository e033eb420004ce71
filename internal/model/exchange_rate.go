package model

import "github.com/google/uuid"

// ExchangeRate is one entry of the append-only rate ledger: how many YER one
// SAR buys. The most recent entry is the current rate.
type ExchangeRate struct {
	BaseModel
	Rate float64 `gorm:"not null" json:"rate" validate:"required,gt=0"`
}

// PriceUpdateLog records one selling-price change caused by an exchange-rate
// revaluation. Append-only.
type PriceUpdateLog struct {
	BaseModel
	ProductID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id"`
	Product        Product      `json:"product,omitempty" validate:"-"`
	OldPrice       float64      `gorm:"not null" json:"old_price"`
	NewPrice       float64      `gorm:"not null" json:"new_price"`
	ExchangeRateID uuid.UUID    `gorm:"type:uuid;not null;index" json:"exchange_rate_id"`
	ExchangeRate   ExchangeRate `json:"exchange_rate,omitempty" validate:"-"`
}
