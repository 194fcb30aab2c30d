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

func TestKeywordMatch_Select(t *testing.T) {
	recipes := []model.Recipe{
		{ID: primitive.NewObjectID(), Name: "Classic Vanilla", Type: model.RecipeBatter},
		{ID: primitive.NewObjectID(), Name: "Rich Chocolate Fudge", Type: model.RecipeBatter},
	}

	tests := []struct {
		name         string
		pattern      string
		expectedName string
		expectNil    bool
	}{
		{
			name:         "matches case-insensitively",
			pattern:      "CHOCOLATE",
			expectedName: "Rich Chocolate Fudge",
		},
		{
			name:         "matches substring",
			pattern:      "vanilla",
			expectedName: "Classic Vanilla",
		},
		{
			name:      "no match returns nil",
			pattern:   "red velvet",
			expectNil: true,
		},
		{
			name:      "blank pattern returns nil",
			pattern:   "   ",
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatalog := new(mocks.MockCatalogRepositoryInterface)
			mockCatalog.On("RecipesByType", mock.Anything, model.RecipeBatter).Return(recipes, nil)

			selector := service.KeywordMatch{Scope: model.RecipeBatter, Pattern: tt.pattern}
			recipe, err := selector.Select(context.Background(), mockCatalog)

			assert.NoError(t, err)
			if tt.expectNil {
				assert.Nil(t, recipe)
			} else {
				assert.NotNil(t, recipe)
				assert.Equal(t, tt.expectedName, recipe.Name)
			}
		})
	}
}

func TestRecipeResolver_ResolveTier(t *testing.T) {
	sizeID := primitive.NewObjectID()
	recipeID := primitive.NewObjectID()
	defaultFrostingID := primitive.NewObjectID()

	tests := []struct {
		name       string
		tier       model.OrderTier
		setupMocks func(*mocks.MockCatalogRepositoryInterface)
		validate   func(*testing.T, []service.ResolvedComponent, *model.TierSize)
	}{
		{
			name: "explicit multiplier wins over volume derivation",
			tier: model.OrderTier{
				TierIndex:        1,
				TierSizeID:       sizeID,
				BatterRecipeID:   &recipeID,
				BatterMultiplier: floatPtr(2.5),
			},
			setupMocks: func(m *mocks.MockCatalogRepositoryInterface) {
				m.On("TierSize", mock.Anything, sizeID).Return(&model.TierSize{ID: sizeID, Volume: 4000, Servings: 20}, nil)
				m.On("Recipe", mock.Anything, recipeID).Return(&model.Recipe{ID: recipeID, Name: "Vanilla Sponge", YieldVolume: 2000}, nil)
			},
			validate: func(t *testing.T, components []service.ResolvedComponent, size *model.TierSize) {
				batter := components[0]
				assert.Equal(t, model.ComponentBatter, batter.Kind)
				assert.Equal(t, 2.5, batter.Multiplier)
				assert.False(t, batter.IsEstimate)
			},
		},
		{
			name: "multiplier derived from tier volume over yield",
			tier: model.OrderTier{
				TierIndex:      1,
				TierSizeID:     sizeID,
				BatterRecipeID: &recipeID,
			},
			setupMocks: func(m *mocks.MockCatalogRepositoryInterface) {
				m.On("TierSize", mock.Anything, sizeID).Return(&model.TierSize{ID: sizeID, Volume: 4000, Servings: 20}, nil)
				m.On("Recipe", mock.Anything, recipeID).Return(&model.Recipe{ID: recipeID, Name: "Vanilla Sponge", YieldVolume: 2000}, nil)
			},
			validate: func(t *testing.T, components []service.ResolvedComponent, size *model.TierSize) {
				batter := components[0]
				assert.Equal(t, 2.0, batter.Multiplier)
				assert.False(t, batter.IsEstimate)
			},
		},
		{
			name: "unknown yield falls back to 1.0 as estimate",
			tier: model.OrderTier{
				TierIndex:      1,
				TierSizeID:     sizeID,
				BatterRecipeID: &recipeID,
			},
			setupMocks: func(m *mocks.MockCatalogRepositoryInterface) {
				m.On("TierSize", mock.Anything, sizeID).Return(&model.TierSize{ID: sizeID, Volume: 4000, Servings: 20}, nil)
				m.On("Recipe", mock.Anything, recipeID).Return(&model.Recipe{ID: recipeID, Name: "Heirloom Fruitcake"}, nil)
			},
			validate: func(t *testing.T, components []service.ResolvedComponent, size *model.TierSize) {
				batter := components[0]
				assert.Equal(t, 1.0, batter.Multiplier)
				assert.True(t, batter.IsEstimate)
			},
		},
		{
			name: "size default drives frosting when no hint or ref",
			tier: model.OrderTier{
				TierIndex:  1,
				TierSizeID: sizeID,
			},
			setupMocks: func(m *mocks.MockCatalogRepositoryInterface) {
				m.On("TierSize", mock.Anything, sizeID).Return(&model.TierSize{
					ID: sizeID, Volume: 4000, Servings: 20,
					DefaultFrostingID: &defaultFrostingID, DefaultFrostingMult: 1.5,
				}, nil)
				m.On("Recipe", mock.Anything, defaultFrostingID).Return(&model.Recipe{ID: defaultFrostingID, Name: "Swiss Meringue", YieldVolume: 1000}, nil)
			},
			validate: func(t *testing.T, components []service.ResolvedComponent, size *model.TierSize) {
				frosting := components[2]
				assert.Equal(t, model.ComponentFrosting, frosting.Kind)
				assert.NotNil(t, frosting.Recipe)
				assert.Equal(t, 1.5, frosting.Multiplier)
				assert.False(t, frosting.IsEstimate)
			},
		},
		{
			name: "unmatched hint degrades to estimate with no recipe",
			tier: model.OrderTier{
				TierIndex:  1,
				TierSizeID: sizeID,
				Flavor:     "red velvet",
			},
			setupMocks: func(m *mocks.MockCatalogRepositoryInterface) {
				m.On("TierSize", mock.Anything, sizeID).Return(&model.TierSize{ID: sizeID, Volume: 4000, Servings: 20}, nil)
				m.On("RecipesByType", mock.Anything, model.RecipeBatter).Return([]model.Recipe{}, nil)
			},
			validate: func(t *testing.T, components []service.ResolvedComponent, size *model.TierSize) {
				batter := components[0]
				assert.Nil(t, batter.Recipe)
				assert.True(t, batter.IsEstimate)
				assert.Contains(t, batter.Note, "red velvet")
			},
		},
		{
			name: "absent component resolves cleanly to nothing",
			tier: model.OrderTier{
				TierIndex:  1,
				TierSizeID: sizeID,
			},
			setupMocks: func(m *mocks.MockCatalogRepositoryInterface) {
				m.On("TierSize", mock.Anything, sizeID).Return(&model.TierSize{ID: sizeID, Volume: 4000, Servings: 20}, nil)
			},
			validate: func(t *testing.T, components []service.ResolvedComponent, size *model.TierSize) {
				filling := components[1]
				assert.Nil(t, filling.Recipe)
				assert.False(t, filling.IsEstimate)
				assert.Empty(t, filling.Note)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatalog := new(mocks.MockCatalogRepositoryInterface)
			tt.setupMocks(mockCatalog)

			resolver := service.NewRecipeResolver(mockCatalog)
			components, size, err := resolver.ResolveTier(context.Background(), tt.tier)

			assert.NoError(t, err)
			assert.Len(t, components, 3)
			tt.validate(t, components, size)
			mockCatalog.AssertExpectations(t)
		})
	}
}

func TestRecipeResolver_ResolveTier_MissingSize(t *testing.T) {
	sizeID := primitive.NewObjectID()
	mockCatalog := new(mocks.MockCatalogRepositoryInterface)
	mockCatalog.On("TierSize", mock.Anything, sizeID).Return(nil, nil)

	resolver := service.NewRecipeResolver(mockCatalog)
	components, size, err := resolver.ResolveTier(context.Background(), model.OrderTier{TierIndex: 1, TierSizeID: sizeID})

	assert.NoError(t, err)
	assert.Nil(t, size)
	assert.Len(t, components, 3)
}

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func idPtr(id primitive.ObjectID) *primitive.ObjectID { return &id }
