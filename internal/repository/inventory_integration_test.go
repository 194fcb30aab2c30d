//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

func TestInventoryRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewInventoryRepository(db)

	now := time.Now().Truncate(time.Millisecond)
	lots := []interface{}{
		model.InventoryLot{
			ID:         primitive.NewObjectID(),
			SKU:        "FLOUR-AP",
			Quantity:   10,
			ProducedAt: now.AddDate(0, 0, -1),
			ExpiresAt:  now.AddDate(0, 1, 0),
		},
		model.InventoryLot{
			ID:         primitive.NewObjectID(),
			SKU:        "FLOUR-AP",
			Quantity:   5,
			ProducedAt: now.AddDate(0, 0, -7),
			ExpiresAt:  now.AddDate(0, 1, 0),
		},
		model.InventoryLot{
			ID:         primitive.NewObjectID(),
			SKU:        "SUGAR-GRAN",
			Quantity:   20,
			ProducedAt: now,
			ExpiresAt:  now.AddDate(1, 0, 0),
		},
	}
	_, err := db.InventoryLots.InsertMany(ctx, lots)
	require.NoError(t, err)

	t.Run("lots come back oldest first", func(t *testing.T) {
		got, err := repo.LotsBySKU(ctx, "FLOUR-AP")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 5.0, got[0].Quantity)
		assert.Equal(t, 10.0, got[1].Quantity)
		assert.True(t, got[0].ProducedAt.Before(got[1].ProducedAt))
	})

	t.Run("unknown sku", func(t *testing.T) {
		got, err := repo.LotsBySKU(ctx, "YEAST-DRY")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
