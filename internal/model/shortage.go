package model

import "github.com/google/uuid"

// ShortageItem is one entry of the resupply working set. Product fields are
// snapshots taken when the entry was created, not live-synced; the entry keeps
// its identity until it is supplied or removed. At most one entry may exist
// per product.
type ShortageItem struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"product_id"`
	Product   Product   `json:"product,omitempty" validate:"-"`

	// Snapshot at creation time
	ProductName     string `gorm:"type:varchar(255);not null" json:"product_name"`
	CurrentQuantity int    `json:"current_quantity"`
	MinimumQuantity int    `json:"minimum_quantity"`
	Unit            string `gorm:"type:varchar(50)" json:"unit"`

	RequestedQuantity int  `json:"requested_quantity"`
	AddedManually     bool `gorm:"default:false" json:"added_manually"`
}
