package service

import (
	"github.com/shopspring/decimal"

	"github.com/ovenline/bakeops/internal/domain/model"
)

// round2 converts an exact decimal amount into a two-decimal float. Rounding
// happens only here, at the output boundary, never between intermediate
// additions.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// FinalizePrice applies markup, discount, and manual adjustment to a total
// cost.
//
// suggestedPrice = totalCost * (1 + markupPercent). A discount is either a
// flat amount or a percent of the suggested price; the discounted price is
// clamped at zero. The manual adjustment is added last, unclamped, so a
// negative adjustment can take the final price below zero. PricePerServing is
// nil when totalServings is zero.
func FinalizePrice(totalCost decimal.Decimal, markupPercent float64, discount *model.Discount, manualAdjustment *float64, totalServings int) model.PriceQuote {
	suggested := totalCost.Mul(decimal.NewFromFloat(1 + markupPercent))

	final := suggested
	if discount != nil {
		switch discount.Type {
		case model.DiscountPercent:
			final = final.Sub(final.Mul(decimal.NewFromFloat(discount.Value).Div(decimal.NewFromInt(100))))
		case model.DiscountAmount:
			final = final.Sub(decimal.NewFromFloat(discount.Value))
		}
		if final.IsNegative() {
			final = decimal.Zero
		}
	}
	if manualAdjustment != nil {
		final = final.Add(decimal.NewFromFloat(*manualAdjustment))
	}

	quote := model.PriceQuote{
		SuggestedPrice: round2(suggested),
		FinalPrice:     round2(final),
	}
	if totalServings > 0 {
		pps := round2(final.Div(decimal.NewFromInt(int64(totalServings))))
		quote.PricePerServing = &pps
	}
	return quote
}
