// Package pricing derives selling prices in YER from a purchase price, a
// profit definition and the SAR->YER exchange rate. All functions are pure;
// callers are responsible for validating the rate before asking for a price.
package pricing

import "go-grocery-pos/internal/model"

// Inputs are the pricing-relevant fields of a product.
type Inputs struct {
	PurchasePrice    float64
	PurchaseCurrency model.Currency
	ProfitType       model.ProfitType
	ProfitValue      float64
	ProfitCurrency   model.Currency
}

// InputsFor extracts pricing inputs from a product, applying the legacy-field
// defaults (SAR purchase, percentage profit, YER fixed amounts).
func InputsFor(p *model.Product) Inputs {
	p.NormalizePricingFields()
	return Inputs{
		PurchasePrice:    p.PurchasePrice,
		PurchaseCurrency: p.PurchaseCurrency,
		ProfitType:       p.ProfitType,
		ProfitValue:      p.ProfitValue,
		ProfitCurrency:   p.ProfitCurrency,
	}
}

// SellingPriceYER computes the selling price in YER for the given inputs and
// exchange rate (YER per 1 SAR).
//
// The purchase price is converted to YER first; a percentage profit is applied
// on the converted price, a fixed profit is converted from its own currency.
// No rounding or clamping happens here: a zero or negative profit value
// legitimately yields a selling price at or below cost, and formatting is a
// presentation concern.
func SellingPriceYER(in Inputs, rate float64) float64 {
	purchaseYER := in.PurchasePrice
	if in.PurchaseCurrency == model.CurrencySAR {
		purchaseYER = in.PurchasePrice * rate
	}

	var profitYER float64
	switch in.ProfitType {
	case model.ProfitFixed:
		profitYER = in.ProfitValue
		if in.ProfitCurrency == model.CurrencySAR {
			profitYER = in.ProfitValue * rate
		}
	default: // percentage
		profitYER = purchaseYER * in.ProfitValue / 100
	}

	return purchaseYER + profitYER
}

// ToYER converts an amount in the given currency to YER at the given rate.
func ToYER(amount float64, currency model.Currency, rate float64) float64 {
	if currency == model.CurrencySAR {
		return amount * rate
	}
	return amount
}
