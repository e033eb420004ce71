package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // OWNER, MANAGER, CASHIER
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleOwner   = "OWNER"
	RoleManager = "MANAGER"
	RoleCashier = "CASHIER"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleOwner,
		Name:        "Shop Owner",
		Description: "Full access with all privileges",
	},
	{
		Code:        RoleManager,
		Name:        "Shop Manager",
		Description: "Catalog, pricing and stock management without user administration",
	},
	{
		Code:        RoleCashier,
		Name:        "Cashier",
		Description: "Record sales and look up products",
	},
}
