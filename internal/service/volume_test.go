package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
	"github.com/ovenline/bakeops/internal/mocks"
	"github.com/ovenline/bakeops/internal/service"
)

func TestVolumePricer_Price(t *testing.T) {
	menuItemID := primitive.NewObjectID()
	tenPercentOff := model.VolumeBreakpoint{
		ID:              primitive.NewObjectID(),
		MenuItemID:      &menuItemID,
		MinQuantity:     10,
		MaxQuantity:     intPtr(24),
		DiscountPercent: floatPtr(10),
	}
	bulkUnitPrice := model.VolumeBreakpoint{
		ID:           primitive.NewObjectID(),
		MenuItemID:   &menuItemID,
		MinQuantity:  25,
		PricePerUnit: floatPtr(1.50),
	}

	tests := []struct {
		name        string
		quantity    int
		basePrice   float64
		breakpoints []model.VolumeBreakpoint
		expected    *model.VolumePriceResult
	}{
		{
			name:        "below every breakpoint pays full price",
			quantity:    6,
			basePrice:   2.00,
			breakpoints: []model.VolumeBreakpoint{tenPercentOff, bulkUnitPrice},
			expected: &model.VolumePriceResult{
				OriginalPrice:   12.00,
				DiscountedPrice: 12.00,
			},
		},
		{
			name:        "percent discount inside the band",
			quantity:    12,
			basePrice:   2.00,
			breakpoints: []model.VolumeBreakpoint{tenPercentOff, bulkUnitPrice},
			expected: &model.VolumePriceResult{
				OriginalPrice:       24.00,
				DiscountedPrice:     21.60,
				DiscountPercent:     10,
				Savings:             2.40,
				AppliedBreakpointID: &tenPercentOff.ID,
			},
		},
		{
			name:        "fixed unit price wins at higher quantity",
			quantity:    30,
			basePrice:   2.00,
			breakpoints: []model.VolumeBreakpoint{tenPercentOff, bulkUnitPrice},
			expected: &model.VolumePriceResult{
				OriginalPrice:       60.00,
				DiscountedPrice:     45.00,
				DiscountPercent:     25,
				Savings:             15.00,
				AppliedBreakpointID: &bulkUnitPrice.ID,
			},
		},
		{
			name:        "band upper edge is inclusive",
			quantity:    24,
			basePrice:   2.00,
			breakpoints: []model.VolumeBreakpoint{tenPercentOff},
			expected: &model.VolumePriceResult{
				OriginalPrice:       48.00,
				DiscountedPrice:     43.20,
				DiscountPercent:     10,
				Savings:             4.80,
				AppliedBreakpointID: &tenPercentOff.ID,
			},
		},
		{
			name:      "malformed breakpoint is ignored",
			quantity:  12,
			basePrice: 2.00,
			breakpoints: []model.VolumeBreakpoint{
				// Scoped to both a menu item and a product type.
				{ID: primitive.NewObjectID(), MenuItemID: &menuItemID, ProductTypeID: idPtr(primitive.NewObjectID()), MinQuantity: 1, DiscountPercent: floatPtr(50)},
			},
			expected: &model.VolumePriceResult{
				OriginalPrice:   24.00,
				DiscountedPrice: 24.00,
			},
		},
		{
			name:        "no breakpoints configured",
			quantity:    100,
			basePrice:   0.75,
			breakpoints: []model.VolumeBreakpoint{},
			expected: &model.VolumePriceResult{
				OriginalPrice:   75.00,
				DiscountedPrice: 75.00,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatalog := new(mocks.MockCatalogRepositoryInterface)
			mockCatalog.On("VolumeBreakpoints", mock.Anything, &menuItemID, mock.Anything).Return(tt.breakpoints, nil)

			pricer := service.NewVolumePricer(mockCatalog)
			result, err := pricer.Price(context.Background(), &menuItemID, nil, tt.quantity, tt.basePrice)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected.OriginalPrice, result.OriginalPrice)
			assert.Equal(t, tt.expected.DiscountedPrice, result.DiscountedPrice)
			assert.Equal(t, tt.expected.Savings, result.Savings)
			assert.Equal(t, tt.expected.DiscountPercent, result.DiscountPercent)
			if tt.expected.AppliedBreakpointID == nil {
				assert.Nil(t, result.AppliedBreakpointID)
			} else {
				assert.NotNil(t, result.AppliedBreakpointID)
				assert.Equal(t, *tt.expected.AppliedBreakpointID, *result.AppliedBreakpointID)
			}
			mockCatalog.AssertExpectations(t)
		})
	}
}

func TestVolumePricer_Price_InvalidInput(t *testing.T) {
	menuItemID := primitive.NewObjectID()

	tests := []struct {
		name       string
		menuItemID *primitive.ObjectID
		quantity   int
		basePrice  float64
	}{
		{name: "zero quantity", menuItemID: &menuItemID, quantity: 0, basePrice: 2},
		{name: "negative quantity", menuItemID: &menuItemID, quantity: -3, basePrice: 2},
		{name: "negative base price", menuItemID: &menuItemID, quantity: 5, basePrice: -1},
		{name: "no scope at all", menuItemID: nil, quantity: 5, basePrice: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pricer := service.NewVolumePricer(new(mocks.MockCatalogRepositoryInterface))

			result, err := pricer.Price(context.Background(), tt.menuItemID, nil, tt.quantity, tt.basePrice)

			assert.ErrorIs(t, err, service.ErrInvalidInput)
			assert.Nil(t, result)
		})
	}
}

func TestVolumePricer_Price_MenuItemScopeWins(t *testing.T) {
	menuItemID := primitive.NewObjectID()
	productTypeID := primitive.NewObjectID()

	mockCatalog := new(mocks.MockCatalogRepositoryInterface)
	mockCatalog.On("VolumeBreakpoints", mock.Anything, &menuItemID, mock.MatchedBy(func(id *primitive.ObjectID) bool {
		return id == nil
	})).Return([]model.VolumeBreakpoint{}, nil)

	pricer := service.NewVolumePricer(mockCatalog)
	_, err := pricer.Price(context.Background(), &menuItemID, &productTypeID, 5, 2.00)

	assert.NoError(t, err)
	mockCatalog.AssertExpectations(t)
}
