package pricing

import (
	"testing"

	"go-grocery-pos/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSellingPriceYER_PercentageOnSAR(t *testing.T) {
	// 10 SAR at rate 680 with 20% margin: 6800 + 1360
	in := Inputs{
		PurchasePrice:    10,
		PurchaseCurrency: model.CurrencySAR,
		ProfitType:       model.ProfitPercentage,
		ProfitValue:      20,
	}
	assert.Equal(t, 10*680.0+10*680.0*20/100, SellingPriceYER(in, 680))
}

func TestSellingPriceYER_FixedYEROnYER(t *testing.T) {
	in := Inputs{
		PurchasePrice:    1500,
		PurchaseCurrency: model.CurrencyYER,
		ProfitType:       model.ProfitFixed,
		ProfitValue:      250,
		ProfitCurrency:   model.CurrencyYER,
	}
	// Rate must not matter when both sides are already YER.
	assert.Equal(t, 1750.0, SellingPriceYER(in, 680))
	assert.Equal(t, 1750.0, SellingPriceYER(in, 700))
}

func TestSellingPriceYER_FixedSARProfit(t *testing.T) {
	in := Inputs{
		PurchasePrice:    1000,
		PurchaseCurrency: model.CurrencyYER,
		ProfitType:       model.ProfitFixed,
		ProfitValue:      2,
		ProfitCurrency:   model.CurrencySAR,
	}
	assert.Equal(t, 1000+2*680.0, SellingPriceYER(in, 680))
}

func TestSellingPriceYER_SARPurchaseFixedYERProfit(t *testing.T) {
	// Scenario: 10 SAR purchase, fixed 500 YER profit, rate 680 -> 7300
	in := Inputs{
		PurchasePrice:    10,
		PurchaseCurrency: model.CurrencySAR,
		ProfitType:       model.ProfitFixed,
		ProfitValue:      500,
		ProfitCurrency:   model.CurrencyYER,
	}
	assert.Equal(t, 7300.0, SellingPriceYER(in, 680))
	assert.Equal(t, 7500.0, SellingPriceYER(in, 700))
}

func TestSellingPriceYER_NegativeProfitAllowed(t *testing.T) {
	// Selling below cost is accepted, not clamped.
	in := Inputs{
		PurchasePrice:    100,
		PurchaseCurrency: model.CurrencyYER,
		ProfitType:       model.ProfitPercentage,
		ProfitValue:      -10,
	}
	assert.Equal(t, 90.0, SellingPriceYER(in, 680))
}

func TestSellingPriceYER_ZeroProfit(t *testing.T) {
	in := Inputs{
		PurchasePrice:    100,
		PurchaseCurrency: model.CurrencyYER,
		ProfitType:       model.ProfitFixed,
		ProfitValue:      0,
		ProfitCurrency:   model.CurrencyYER,
	}
	assert.Equal(t, 100.0, SellingPriceYER(in, 680))
}

func TestSellingPriceYER_Deterministic(t *testing.T) {
	in := Inputs{
		PurchasePrice:    13.37,
		PurchaseCurrency: model.CurrencySAR,
		ProfitType:       model.ProfitPercentage,
		ProfitValue:      7.5,
	}
	first := SellingPriceYER(in, 683.25)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, SellingPriceYER(in, 683.25))
	}
}

func TestInputsFor_LegacyDefaults(t *testing.T) {
	// A record migrated from the old flat shape carries only a purchase
	// price and a profit value.
	p := &model.Product{PurchasePrice: 10, ProfitValue: 15}
	in := InputsFor(p)

	assert.Equal(t, model.CurrencySAR, in.PurchaseCurrency)
	assert.Equal(t, model.ProfitPercentage, in.ProfitType)
	assert.Equal(t, model.CurrencyYER, in.ProfitCurrency)
	assert.Equal(t, 10*680.0+10*680.0*15/100, SellingPriceYER(in, 680))
}

func TestToYER(t *testing.T) {
	assert.Equal(t, 680.0, ToYER(1, model.CurrencySAR, 680))
	assert.Equal(t, 1.0, ToYER(1, model.CurrencyYER, 680))
}
