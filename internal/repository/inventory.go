// Package repository provides data access for inventory lots.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ovenline/bakeops/internal/domain/model"
)

// InventoryRepository provides inventory lot reads.
type InventoryRepository struct {
	collection *mongo.Collection
}

// NewInventoryRepository creates a new inventory repository.
func NewInventoryRepository(db *MongoDB) *InventoryRepository {
	return &InventoryRepository{collection: db.InventoryLots}
}

// LotsBySKU returns the SKU's lots ordered by produced_at ascending.
func (r *InventoryRepository) LotsBySKU(ctx context.Context, sku string) ([]model.InventoryLot, error) {
	opts := options.Find().SetSort(bson.M{"produced_at": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"sku": sku}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var lots []model.InventoryLot
	if err := cursor.All(ctx, &lots); err != nil {
		return nil, err
	}
	return lots, nil
}
