package repository

import (
	"go-grocery-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShortageRepository interface {
	Create(tx *gorm.DB, item *model.ShortageItem) error
	FindAll() ([]model.ShortageItem, error)
	FindByID(id uuid.UUID) (*model.ShortageItem, error)
	FindByProductID(tx *gorm.DB, productID uuid.UUID) (*model.ShortageItem, error)
	Delete(tx *gorm.DB, id uuid.UUID) error
	DeleteByProductID(tx *gorm.DB, productID uuid.UUID) error
}

type shortageRepo struct {
	db *gorm.DB
}

func NewShortageRepo(db *gorm.DB) ShortageRepository {
	return &shortageRepo{db}
}

func (r *shortageRepo) Create(tx *gorm.DB, item *model.ShortageItem) error {
	return tx.Create(item).Error
}

func (r *shortageRepo) FindAll() ([]model.ShortageItem, error) {
	var items []model.ShortageItem
	err := r.db.Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *shortageRepo) FindByID(id uuid.UUID) (*model.ShortageItem, error) {
	var item model.ShortageItem
	err := r.db.First(&item, "id = ?", id).Error
	return &item, err
}

func (r *shortageRepo) FindByProductID(tx *gorm.DB, productID uuid.UUID) (*model.ShortageItem, error) {
	var item model.ShortageItem
	err := tx.First(&item, "product_id = ?", productID).Error
	return &item, err
}

// Deletes are unscoped: a soft-deleted row would still occupy the one-entry-
// per-product unique index and block the next auto-created entry.
func (r *shortageRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Unscoped().Delete(&model.ShortageItem{}, "id = ?", id).Error
}

func (r *shortageRepo) DeleteByProductID(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Unscoped().Delete(&model.ShortageItem{}, "product_id = ?", productID).Error
}
