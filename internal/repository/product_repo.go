package repository

import (
	"go-grocery-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindAllLocked(tx *gorm.DB) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByShortcut(number int) (*model.Product, error)
	Search(query string) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	CountByUnit(unitName string) (int64, error)
	Count() (int64, error)
	CountLowStock() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

// FindAllLocked fetches every product with a row lock inside the caller's
// transaction, for bulk repricing.
func (r *productRepo) FindAllLocked(tx *gorm.DB) ([]model.Product, error) {
	var products []model.Product
	err := tx.Set("gorm:query_option", "FOR UPDATE").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByShortcut(number int) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "shortcut_number = ?", number).Error
	return &product, err
}

// Search matches product names case-insensitively. Voice search feeds plain
// strings through the same path.
func (r *productRepo) Search(query string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Delete removes the row for good. Soft-deleted rows would keep occupying the
// shortcut-number unique index.
func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Unscoped().Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) CountByUnit(unitName string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("unit = ?", unitName).Count(&count).Error
	return count, err
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("is_low_stock = ?", true).Count(&count).Error
	return count, err
}
