package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxSale     TransactionType = "SALE"
	TxPurchase TransactionType = "PURCHASE"
)

// Transaction is a sale or purchase with one or more line items. A sale
// decrements product quantities, a purchase increments them. All amounts are
// snapshots in YER taken when the transaction was recorded.
type Transaction struct {
	BaseModel
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=SALE PURCHASE"`
	TotalAmount float64         `gorm:"not null" json:"total_amount"`
	Supplier    string          `gorm:"type:varchar(255)" json:"supplier"` // purchases only
	Note        string          `json:"note"`

	Items []TransactionItem `json:"items" validate:"-"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}

// TransactionItem is one product line. ProductName and Unit are snapshots so
// the history survives later product edits or deletion.
type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName   string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Unit          string    `gorm:"type:varchar(50)" json:"unit"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	UnitPrice     float64   `gorm:"not null" json:"unit_price"` // YER
	LineTotal     float64   `gorm:"not null" json:"line_total"` // YER
}
