// Package repository provides data access for orders and their costings.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ovenline/bakeops/internal/domain/model"
)

// OrderRepository provides order and costing persistence.
type OrderRepository struct {
	orders   *mongo.Collection
	costings *mongo.Collection
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *MongoDB) *OrderRepository {
	return &OrderRepository{
		orders:   db.Orders,
		costings: db.Costings,
	}
}

// Order returns the order by id, or (nil, nil) when absent.
func (r *OrderRepository) Order(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	return findOne[model.Order](ctx, r.orders, bson.M{"_id": id})
}

// Orders returns the orders matching the given ids. Missing ids are simply
// absent from the result.
func (r *OrderRepository) Orders(ctx context.Context, ids []primitive.ObjectID) ([]model.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return findAll[model.Order](ctx, r.orders, bson.M{"_id": bson.M{"$in": ids}})
}

// SaveCosting inserts the breakdown into the costing history. Every finalize
// appends a new versioned document; prior versions are retained for audit.
func (r *OrderRepository) SaveCosting(ctx context.Context, orderID primitive.ObjectID, breakdown *model.CostBreakdown) error {
	breakdown.OrderID = &orderID
	_, err := r.costings.InsertOne(ctx, breakdown)
	if err != nil {
		return err
	}

	_, err = r.orders.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{
		"$set": bson.M{"updated_at": time.Now()},
	})
	return err
}

// LatestCosting returns the highest-version costing for the order, or
// (nil, nil) when the order has never been finalized.
func (r *OrderRepository) LatestCosting(ctx context.Context, orderID primitive.ObjectID) (*model.CostBreakdown, error) {
	opts := options.FindOne().SetSort(bson.M{"version": -1})
	var breakdown model.CostBreakdown
	err := r.costings.FindOne(ctx, bson.M{"order_id": orderID}, opts).Decode(&breakdown)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}

// UpdateProductionStatus sets the order's production status.
func (r *OrderRepository) UpdateProductionStatus(ctx context.Context, orderID primitive.ObjectID, status model.ProductionStatus) error {
	_, err := r.orders.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{
		"$set": bson.M{
			"production_status": status,
			"updated_at":        time.Now(),
		},
	})
	return err
}
