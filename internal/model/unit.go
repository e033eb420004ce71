package model

// Unit is a named measurement unit. A composite unit packs a fixed number of
// another unit, e.g. "carton" = 24 x "can".
type Unit struct {
	BaseModel
	Name              string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"name" validate:"required"`
	HasCustomQuantity bool    `gorm:"default:false" json:"has_custom_quantity"`
	BaseQuantity      *int    `json:"base_quantity,omitempty" validate:"omitempty,min=1"`
	BaseUnit          *string `gorm:"type:varchar(50)" json:"base_unit,omitempty"`
}
