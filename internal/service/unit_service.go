package service

import (
	"fmt"

	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/repository"
	"go-grocery-pos/pkg/validator"

	"github.com/google/uuid"
)

type UnitService interface {
	CreateUnit(req *model.Unit, userID string) error
	DeleteUnit(id uuid.UUID) error
	GetAllUnits() ([]model.Unit, error)
}

type unitService struct {
	unitRepo    repository.UnitRepository
	productRepo repository.ProductRepository
}

func NewUnitService(uRepo repository.UnitRepository, pRepo repository.ProductRepository) UnitService {
	return &unitService{
		unitRepo:    uRepo,
		productRepo: pRepo,
	}
}

func (s *unitService) CreateUnit(req *model.Unit, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.unitRepo.FindByName(req.Name); existing != nil && existing.ID != uuid.Nil {
		return ErrDuplicateUnit
	}

	// A composite unit must name a base quantity and an existing base unit.
	if req.HasCustomQuantity {
		if req.BaseQuantity == nil || *req.BaseQuantity < 1 || req.BaseUnit == nil || *req.BaseUnit == "" {
			return fmt.Errorf("validation failed: composite unit requires base_quantity and base_unit")
		}
		if _, err := s.unitRepo.FindByName(*req.BaseUnit); err != nil {
			return ErrUnitNotFound
		}
	} else {
		req.BaseQuantity = nil
		req.BaseUnit = nil
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.unitRepo.Create(req)
}

// DeleteUnit refuses to remove a unit any product still references.
func (s *unitService) DeleteUnit(id uuid.UUID) error {
	unit, err := s.unitRepo.FindByID(id)
	if err != nil {
		return ErrUnitNotFound
	}

	count, err := s.productRepo.CountByUnit(unit.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUnitInUse
	}

	return s.unitRepo.Delete(id)
}

func (s *unitService) GetAllUnits() ([]model.Unit, error) {
	return s.unitRepo.FindAll()
}
