package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ovenline/bakeops/internal/domain/model"
)

func TestFinalizePrice(t *testing.T) {
	tests := []struct {
		name              string
		totalCost         float64
		markupPercent     float64
		discount          *model.Discount
		manualAdjustment  *float64
		totalServings     int
		expectedSuggested float64
		expectedFinal     float64
		expectedPPS       *float64
	}{
		{
			name:              "markup only",
			totalCost:         100,
			markupPercent:     0.5,
			totalServings:     20,
			expectedSuggested: 150,
			expectedFinal:     150,
			expectedPPS:       pps(7.5),
		},
		{
			name:              "percent discount",
			totalCost:         100,
			markupPercent:     0.5,
			discount:          &model.Discount{Type: model.DiscountPercent, Value: 10},
			totalServings:     20,
			expectedSuggested: 150,
			expectedFinal:     135,
			expectedPPS:       pps(6.75),
		},
		{
			name:              "amount discount",
			totalCost:         100,
			markupPercent:     0.5,
			discount:          &model.Discount{Type: model.DiscountAmount, Value: 25},
			expectedSuggested: 150,
			expectedFinal:     125,
		},
		{
			name:              "oversized discount clamps at zero",
			totalCost:         100,
			markupPercent:     0.5,
			discount:          &model.Discount{Type: model.DiscountAmount, Value: 500},
			expectedSuggested: 150,
			expectedFinal:     0,
		},
		{
			name:              "manual adjustment applies after the clamp",
			totalCost:         100,
			markupPercent:     0.5,
			discount:          &model.Discount{Type: model.DiscountAmount, Value: 500},
			manualAdjustment:  pps(-10),
			expectedSuggested: 150,
			expectedFinal:     -10,
		},
		{
			name:              "positive manual adjustment",
			totalCost:         100,
			markupPercent:     0.5,
			manualAdjustment:  pps(19.99),
			expectedSuggested: 150,
			expectedFinal:     169.99,
		},
		{
			name:              "zero servings yields no per-serving price",
			totalCost:         100,
			markupPercent:     0.5,
			totalServings:     0,
			expectedSuggested: 150,
			expectedFinal:     150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := FinalizePrice(decimal.NewFromFloat(tt.totalCost), tt.markupPercent, tt.discount, tt.manualAdjustment, tt.totalServings)

			assert.Equal(t, tt.expectedSuggested, quote.SuggestedPrice)
			assert.Equal(t, tt.expectedFinal, quote.FinalPrice)
			if tt.expectedPPS == nil {
				assert.Nil(t, quote.PricePerServing)
			} else {
				assert.NotNil(t, quote.PricePerServing)
				assert.Equal(t, *tt.expectedPPS, *quote.PricePerServing)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.25, round2(decimal.NewFromFloat(1.245).Add(decimal.NewFromFloat(0.005))))
	assert.Equal(t, 3.33, round2(decimal.NewFromInt(10).Div(decimal.NewFromInt(3))))
	assert.Equal(t, 0.0, round2(decimal.Zero))
}

func pps(f float64) *float64 { return &f }
