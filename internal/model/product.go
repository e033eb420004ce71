package model

import "time"

// Currency codes prices can be expressed in.
type Currency string

const (
	CurrencySAR Currency = "SAR"
	CurrencyYER Currency = "YER"
)

// ProfitType controls how the selling price is derived from the purchase price.
type ProfitType string

const (
	ProfitPercentage ProfitType = "percentage"
	ProfitFixed      ProfitType = "fixed"
)

type Product struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit        string `gorm:"type:varchar(50);not null" json:"unit" validate:"required"`
	Category    string `gorm:"type:varchar(100)" json:"category"`
	Description string `gorm:"type:text" json:"description"`

	CurrentQuantity int `gorm:"default:0" json:"current_quantity" validate:"min=0"`
	MinimumQuantity int `gorm:"default:0" json:"minimum_quantity" validate:"min=0"`

	// Purchase cost and profit definition. The selling price is always
	// derived in YER; ProfitCurrency only matters for fixed profit.
	PurchasePrice    float64    `gorm:"not null" json:"purchase_price" validate:"required,gt=0"`
	PurchaseCurrency Currency   `gorm:"type:varchar(3);default:'SAR'" json:"purchase_currency" validate:"omitempty,oneof=SAR YER"`
	ProfitType       ProfitType `gorm:"type:varchar(10);default:'percentage'" json:"profit_type" validate:"omitempty,oneof=percentage fixed"`
	ProfitValue      float64    `json:"profit_value"`
	ProfitCurrency   Currency   `gorm:"type:varchar(3);default:'YER'" json:"profit_currency" validate:"omitempty,oneof=SAR YER"`

	// Derived fields. Never set directly by callers; every mutation path
	// recomputes them so they always reflect the stored inputs.
	CurrentSellingPrice float64 `json:"current_selling_price"`
	IsLowStock          bool    `gorm:"index" json:"is_low_stock"`

	// Cashier shortcut, unique when present (1..999).
	ShortcutNumber *int       `gorm:"uniqueIndex" json:"shortcut_number,omitempty" validate:"omitempty,min=1,max=999"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`
}

// NormalizePricingFields fills the defaults legacy records were stored with:
// a bare purchase price means SAR, profit is a percentage margin, and a fixed
// profit amount is YER unless stated otherwise.
func (p *Product) NormalizePricingFields() {
	if p.PurchaseCurrency == "" {
		p.PurchaseCurrency = CurrencySAR
	}
	if p.ProfitType == "" {
		p.ProfitType = ProfitPercentage
	}
	if p.ProfitCurrency == "" {
		p.ProfitCurrency = CurrencyYER
	}
}

// RefreshLowStock recomputes the derived low-stock flag.
func (p *Product) RefreshLowStock() {
	p.IsLowStock = p.CurrentQuantity <= p.MinimumQuantity
}
