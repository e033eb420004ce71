package repository

import (
	"go-grocery-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitRepository interface {
	Create(unit *model.Unit) error
	FindAll() ([]model.Unit, error)
	FindByID(id uuid.UUID) (*model.Unit, error)
	FindByName(name string) (*model.Unit, error)
	Delete(id uuid.UUID) error
}

type unitRepo struct {
	db *gorm.DB
}

func NewUnitRepo(db *gorm.DB) UnitRepository {
	return &unitRepo{db}
}

func (r *unitRepo) Create(unit *model.Unit) error {
	return r.db.Create(unit).Error
}

func (r *unitRepo) FindAll() ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.Order("name ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) FindByID(id uuid.UUID) (*model.Unit, error) {
	var unit model.Unit
	err := r.db.First(&unit, "id = ?", id).Error
	return &unit, err
}

func (r *unitRepo) FindByName(name string) (*model.Unit, error) {
	var unit model.Unit
	err := r.db.First(&unit, "name = ?", name).Error
	return &unit, err
}

// Delete is unscoped so a deleted name can be registered again later.
func (r *unitRepo) Delete(id uuid.UUID) error {
	return r.db.Unscoped().Delete(&model.Unit{}, "id = ?", id).Error
}
