//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

func TestCatalogRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewCatalogRepository(db)

	chocolate := model.Recipe{
		ID:           primitive.NewObjectID(),
		Name:         "Chocolate Fudge",
		Type:         model.RecipeBatter,
		YieldVolume:  2000,
		LaborMinutes: 30,
	}
	vanilla := model.Recipe{
		ID:          primitive.NewObjectID(),
		Name:        "Vanilla Bean",
		Type:        model.RecipeBatter,
		YieldVolume: 2000,
	}
	buttercream := model.Recipe{
		ID:   primitive.NewObjectID(),
		Name: "Swiss Buttercream",
		Type: model.RecipeFrosting,
	}
	for _, r := range []model.Recipe{chocolate, vanilla, buttercream} {
		_, err := db.Recipes.InsertOne(ctx, r)
		require.NoError(t, err)
	}

	t.Run("recipe by id", func(t *testing.T) {
		got, err := repo.Recipe(ctx, chocolate.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Chocolate Fudge", got.Name)
		assert.Equal(t, 2000.0, got.YieldVolume)
	})

	t.Run("missing recipe returns nil without error", func(t *testing.T) {
		got, err := repo.Recipe(ctx, primitive.NewObjectID())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("recipes by type", func(t *testing.T) {
		batters, err := repo.RecipesByType(ctx, model.RecipeBatter)
		require.NoError(t, err)
		assert.Len(t, batters, 2)

		frostings, err := repo.RecipesByType(ctx, model.RecipeFrosting)
		require.NoError(t, err)
		require.Len(t, frostings, 1)
		assert.Equal(t, "Swiss Buttercream", frostings[0].Name)
	})
}

func TestCatalogRepository_VolumeBreakpointScopes_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewCatalogRepository(db)

	menuItemID := primitive.NewObjectID()
	productTypeID := primitive.NewObjectID()
	ten := 10
	pct := 10.0

	itemScoped := model.VolumeBreakpoint{
		ID:              primitive.NewObjectID(),
		MenuItemID:      &menuItemID,
		MinQuantity:     ten,
		DiscountPercent: &pct,
	}
	typeScoped := model.VolumeBreakpoint{
		ID:              primitive.NewObjectID(),
		ProductTypeID:   &productTypeID,
		MinQuantity:     25,
		DiscountPercent: &pct,
	}
	for _, b := range []model.VolumeBreakpoint{itemScoped, typeScoped} {
		_, err := db.VolumeBreakpoints.InsertOne(ctx, b)
		require.NoError(t, err)
	}

	t.Run("menu item scope", func(t *testing.T) {
		got, err := repo.VolumeBreakpoints(ctx, &menuItemID, nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, itemScoped.ID, got[0].ID)
	})

	t.Run("product type scope", func(t *testing.T) {
		got, err := repo.VolumeBreakpoints(ctx, nil, &productTypeID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, typeScoped.ID, got[0].ID)
	})

	t.Run("unknown scope matches nothing", func(t *testing.T) {
		otherID := primitive.NewObjectID()
		got, err := repo.VolumeBreakpoints(ctx, &otherID, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
