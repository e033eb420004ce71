package service

import (
	"testing"

	"go-grocery-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddManual_CreatesEntryForHealthyProduct(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustCreate(t, newProduct("Rice 5kg")) // 50 on hand, min 10

	item, err := env.shortages.AddManual(p.ID, 30, "tester")
	require.NoError(t, err)
	assert.True(t, item.AddedManually)
	assert.Equal(t, 30, item.RequestedQuantity)
	assert.Equal(t, 50, item.CurrentQuantity) // snapshot
}

func TestAddManual_SuggestsQuantityWhenUnspecified(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustCreate(t, newProduct("Rice 5kg"))

	item, err := env.shortages.AddManual(p.ID, 0, "tester")
	require.NoError(t, err)
	// 50 on hand against minimum 10: fall back to the minimum itself.
	assert.Equal(t, 10, item.RequestedQuantity)
}

func TestAddManual_DuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustCreate(t, newProduct("Rice 5kg"))

	_, err := env.shortages.AddManual(p.ID, 30, "tester")
	require.NoError(t, err)

	_, err = env.shortages.AddManual(p.ID, 10, "tester")
	assert.ErrorIs(t, err, ErrDuplicateShortage)

	// Still exactly one entry for the product.
	var count int64
	env.db.Model(&model.ShortageItem{}).Where("product_id = ?", p.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddManual_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.shortages.AddManual(uuid.New(), 5, "tester")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMarkSupplied_SetsAbsoluteQuantityAndRemovesEntry(t *testing.T) {
	env := newTestEnv(t)

	p := newProduct("Milk Powder")
	p.CurrentQuantity = 5
	p.MinimumQuantity = 10
	env.mustCreate(t, p)

	item := env.shortageFor(t, p)
	require.NotNil(t, item)

	supplied, err := env.shortages.MarkSupplied(item.ID, 40, "tester")
	require.NoError(t, err)

	// Absolute set, not an increment.
	assert.Equal(t, 40, supplied.CurrentQuantity)
	assert.False(t, supplied.IsLowStock)
	assert.Nil(t, env.shortageFor(t, supplied))
}

func TestMarkSupplied_BelowMinimumRecreatesEntry(t *testing.T) {
	env := newTestEnv(t)

	p := newProduct("Milk Powder")
	p.CurrentQuantity = 5
	p.MinimumQuantity = 10
	env.mustCreate(t, p)

	item := env.shortageFor(t, p)
	require.NotNil(t, item)

	supplied, err := env.shortages.MarkSupplied(item.ID, 8, "tester")
	require.NoError(t, err)
	assert.True(t, supplied.IsLowStock)

	// The low-stock check ran again and opened a fresh entry.
	fresh := env.shortageFor(t, supplied)
	require.NotNil(t, fresh)
	assert.NotEqual(t, item.ID, fresh.ID)
	assert.Equal(t, 12, fresh.RequestedQuantity) // max(10*2-8, 10)
}

func TestMarkSupplied_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.shortages.MarkSupplied(uuid.New(), 10, "tester")
	assert.ErrorIs(t, err, ErrShortageNotFound)
}

func TestRemove_LeavesProductAlone(t *testing.T) {
	env := newTestEnv(t)

	p := newProduct("Milk Powder")
	p.CurrentQuantity = 5
	env.mustCreate(t, p)

	item := env.shortageFor(t, p)
	require.NotNil(t, item)
	require.NoError(t, env.shortages.Remove(item.ID))

	assert.Nil(t, env.shortageFor(t, p))
	stored, err := env.catalog.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.CurrentQuantity)

	assert.ErrorIs(t, env.shortages.Remove(item.ID), ErrShortageNotFound)
}

func TestResupplyEstimate_NormalizesCostsToYER(t *testing.T) {
	env := newTestEnv(t)

	// SAR-priced product: 2 SAR at rate 680 -> 1360 YER per unit
	sar := newProduct("Tomato Paste")
	sar.PurchasePrice = 2
	sar.CurrentQuantity = 5
	sar.MinimumQuantity = 10 // auto entry, requested 15
	env.mustCreate(t, sar)

	// YER-priced product added manually
	yer := newProduct("Water Bottle")
	yer.PurchasePrice = 150
	yer.PurchaseCurrency = model.CurrencyYER
	env.mustCreate(t, yer)
	_, err := env.shortages.AddManual(yer.ID, 10, "tester")
	require.NoError(t, err)

	report, err := env.shortages.ResupplyEstimate()
	require.NoError(t, err)
	require.Len(t, report.Items, 2)

	// 15 * 1360 + 10 * 150 = 20400 + 1500
	expected := decimal.NewFromInt(20400 + 1500)
	assert.True(t, report.TotalCost.Equal(expected), "got %s", report.TotalCost)
}
