package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Product catalog
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Measurement units
	{Code: "unit:create", Name: "Create Unit"},
	{Code: "unit:delete", Name: "Delete Unit"},
	// Exchange rate
	{Code: "rate:view", Name: "View Exchange Rate"},
	{Code: "rate:update", Name: "Update Exchange Rate"},
	// Shortage tracking
	{Code: "shortage:view", Name: "View Shortages"},
	{Code: "shortage:manage", Name: "Manage Shortages"},
	// Sales and purchases
	{Code: "sale:create", Name: "Record Sale"},
	{Code: "purchase:create", Name: "Record Purchase"},
	{Code: "transaction:view", Name: "View Transactions"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// CashierPrivilegeCodes is the subset a cashier session needs.
var CashierPrivilegeCodes = []string{
	"product:view",
	"sale:create",
	"transaction:view",
	"shortage:view",
	"rate:view",
}
