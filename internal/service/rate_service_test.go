package service

import (
	"math"
	"testing"

	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetExchangeRate_RejectsInvalidRates(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreate(t, newProduct("Rice 5kg"))

	for _, bad := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, _, err := env.rates.SetExchangeRate(bad, "tester")
		assert.ErrorIs(t, err, ErrInvalidRate)
	}

	// Nothing changed: ledger still has only the seed rate and the product
	// price is untouched.
	history, err := env.rates.RateHistory()
	require.NoError(t, err)
	assert.Len(t, history, 1)

	var logCount int64
	env.db.Model(&model.PriceUpdateLog{}).Count(&logCount)
	assert.Zero(t, logCount)
}

func TestSetExchangeRate_RevaluesWholeCatalog(t *testing.T) {
	env := newTestEnv(t)

	// Rate-sensitive: 10 SAR + fixed 500 YER -> 7300 at 680
	sensitive := env.mustCreate(t, newProduct("Rice 5kg"))
	require.Equal(t, 7300.0, sensitive.CurrentSellingPrice)

	// Rate-independent: YER purchase with YER fixed profit
	flat := newProduct("Water Bottle")
	flat.PurchasePrice = 150
	flat.PurchaseCurrency = model.CurrencyYER
	flat.ProfitValue = 50
	env.mustCreate(t, flat)
	require.Equal(t, 200.0, flat.CurrentSellingPrice)

	entry, result, err := env.rates.SetExchangeRate(700, "tester")
	require.NoError(t, err)
	assert.Equal(t, 2, result.ProductsChecked)
	assert.Equal(t, 1, result.PricesChanged)

	// Every product now carries the price the engine produces for the new
	// rate.
	products, err := env.catalog.GetAllProducts()
	require.NoError(t, err)
	for i := range products {
		p := &products[i]
		assert.Equal(t, pricing.SellingPriceYER(pricing.InputsFor(p), 700), p.CurrentSellingPrice)
	}

	updated, err := env.catalog.GetProduct(sensitive.ID)
	require.NoError(t, err)
	assert.Equal(t, 7500.0, updated.CurrentSellingPrice)

	// Exactly one log entry, for the product whose price moved.
	var logs []model.PriceUpdateLog
	require.NoError(t, env.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, sensitive.ID, logs[0].ProductID)
	assert.Equal(t, 7300.0, logs[0].OldPrice)
	assert.Equal(t, 7500.0, logs[0].NewPrice)
	assert.Equal(t, entry.ID, logs[0].ExchangeRateID)
}

func TestSetExchangeRate_AppendsToLedger(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.rates.SetExchangeRate(700, "tester")
	require.NoError(t, err)
	_, _, err = env.rates.SetExchangeRate(710, "tester")
	require.NoError(t, err)

	current, err := env.rates.CurrentRate()
	require.NoError(t, err)
	assert.Equal(t, 710.0, current.Rate)

	history, err := env.rates.RateHistory()
	require.NoError(t, err)
	assert.Len(t, history, 3) // seed + two updates
}

func TestSetExchangeRate_LogsAccumulateAcrossRevaluations(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustCreate(t, newProduct("Rice 5kg"))

	_, _, err := env.rates.SetExchangeRate(700, "tester")
	require.NoError(t, err)
	_, _, err = env.rates.SetExchangeRate(680, "tester")
	require.NoError(t, err)

	logs, err := env.rates.PriceLog(&p.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestSetExchangeRate_LegacyFieldDefaults(t *testing.T) {
	env := newTestEnv(t)

	// A record from the old flat shape: purchase price with nothing else.
	legacy := &model.Product{
		Name:            "Legacy Soap",
		Unit:            "piece",
		CurrentQuantity: 20,
		MinimumQuantity: 5,
		PurchasePrice:   3,
		ProfitValue:     10,
	}
	require.NoError(t, env.db.Create(legacy).Error)

	_, result, err := env.rates.SetExchangeRate(700, "tester")
	require.NoError(t, err)
	assert.Equal(t, 1, result.PricesChanged)

	var stored model.Product
	require.NoError(t, env.db.First(&stored, "id = ?", legacy.ID).Error)
	// Defaults: SAR purchase, percentage profit -> 3*700 * 1.10
	assert.Equal(t, 3*700.0+3*700.0*10/100, stored.CurrentSellingPrice)
}
