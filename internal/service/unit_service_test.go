package service

import (
	"testing"

	"go-grocery-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateUnit_Simple(t *testing.T) {
	env := newTestEnv(t)

	u := &model.Unit{Name: "sack"}
	require.NoError(t, env.units.CreateUnit(u, "tester"))

	all, err := env.units.GetAllUnits()
	require.NoError(t, err)
	assert.Len(t, all, 4) // piece, can, carton + sack
}

func TestCreateUnit_DuplicateName(t *testing.T) {
	env := newTestEnv(t)

	err := env.units.CreateUnit(&model.Unit{Name: "piece"}, "tester")
	assert.ErrorIs(t, err, ErrDuplicateUnit)
}

func TestCreateUnit_Composite(t *testing.T) {
	env := newTestEnv(t)

	u := &model.Unit{
		Name:              "tray",
		HasCustomQuantity: true,
		BaseQuantity:      intPtr(30),
		BaseUnit:          strPtr("piece"),
	}
	require.NoError(t, env.units.CreateUnit(u, "tester"))
	assert.Equal(t, 30, *u.BaseQuantity)
}

func TestCreateUnit_CompositeValidation(t *testing.T) {
	env := newTestEnv(t)

	// Missing base quantity.
	err := env.units.CreateUnit(&model.Unit{
		Name:              "tray",
		HasCustomQuantity: true,
		BaseUnit:          strPtr("piece"),
	}, "tester")
	assert.Error(t, err)

	// Base quantity below one.
	err = env.units.CreateUnit(&model.Unit{
		Name:              "tray",
		HasCustomQuantity: true,
		BaseQuantity:      intPtr(0),
		BaseUnit:          strPtr("piece"),
	}, "tester")
	assert.Error(t, err)

	// Base unit does not exist.
	err = env.units.CreateUnit(&model.Unit{
		Name:              "tray",
		HasCustomQuantity: true,
		BaseQuantity:      intPtr(30),
		BaseUnit:          strPtr("pallet"),
	}, "tester")
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestCreateUnit_SimpleDropsBaseFields(t *testing.T) {
	env := newTestEnv(t)

	u := &model.Unit{
		Name:         "sack",
		BaseQuantity: intPtr(10),
		BaseUnit:     strPtr("piece"),
	}
	require.NoError(t, env.units.CreateUnit(u, "tester"))
	assert.Nil(t, u.BaseQuantity)
	assert.Nil(t, u.BaseUnit)
}

func TestDeleteUnit_RefusedWhileReferenced(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreate(t, newProduct("Rice 5kg")) // unit "piece"

	var piece model.Unit
	require.NoError(t, env.db.First(&piece, "name = ?", "piece").Error)

	assert.ErrorIs(t, env.units.DeleteUnit(piece.ID), ErrUnitInUse)
}

func TestDeleteUnit_UnreferencedSucceeds(t *testing.T) {
	env := newTestEnv(t)

	var can model.Unit
	require.NoError(t, env.db.First(&can, "name = ?", "can").Error)
	require.NoError(t, env.units.DeleteUnit(can.ID))

	all, err := env.units.GetAllUnits()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, env.units.DeleteUnit(uuid.New()), ErrUnitNotFound)
}
