package service

import "errors"

// Domain failures. Every mutation either succeeds or fails with one of these
// (or a validation message) leaving the store untouched; handlers map them to
// HTTP status codes.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrShortageNotFound    = errors.New("shortage entry not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrRateNotSet          = errors.New("no exchange rate configured")

	ErrDuplicateShortcut = errors.New("shortcut number already in use")
	ErrDuplicateUnit     = errors.New("unit name already exists")
	ErrDuplicateShortage = errors.New("product already has a shortage entry")

	ErrInvalidRate       = errors.New("exchange rate must be a positive finite number")
	ErrUnitInUse         = errors.New("unit is referenced by existing products")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
)
