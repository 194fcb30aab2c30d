// Package repository provides data access for the bakery catalog.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ovenline/bakeops/internal/domain/model"
)

// CatalogRepository provides read access to catalog collections.
type CatalogRepository struct {
	db *MongoDB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Recipe returns the recipe by id, or (nil, nil) when absent.
func (r *CatalogRepository) Recipe(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	return findOne[model.Recipe](ctx, r.db.Recipes, bson.M{"_id": id})
}

// RecipesByType returns every recipe of the given type.
func (r *CatalogRepository) RecipesByType(ctx context.Context, t model.RecipeType) ([]model.Recipe, error) {
	return findAll[model.Recipe](ctx, r.db.Recipes, bson.M{"type": t})
}

// Ingredient returns the ingredient by id, or (nil, nil) when absent.
func (r *CatalogRepository) Ingredient(ctx context.Context, id primitive.ObjectID) (*model.Ingredient, error) {
	return findOne[model.Ingredient](ctx, r.db.Ingredients, bson.M{"_id": id})
}

// TierSize returns the tier size by id, or (nil, nil) when absent.
func (r *CatalogRepository) TierSize(ctx context.Context, id primitive.ObjectID) (*model.TierSize, error) {
	return findOne[model.TierSize](ctx, r.db.TierSizes, bson.M{"_id": id})
}

// LaborRole returns the labor role by id, or (nil, nil) when absent.
func (r *CatalogRepository) LaborRole(ctx context.Context, id primitive.ObjectID) (*model.LaborRole, error) {
	return findOne[model.LaborRole](ctx, r.db.LaborRoles, bson.M{"_id": id})
}

// DecorationTechnique returns the technique by id, or (nil, nil) when absent.
func (r *CatalogRepository) DecorationTechnique(ctx context.Context, id primitive.ObjectID) (*model.DecorationTechnique, error) {
	return findOne[model.DecorationTechnique](ctx, r.db.DecorationTechniques, bson.M{"_id": id})
}

// Packaging returns the packaging SKU by id, or (nil, nil) when absent.
func (r *CatalogRepository) Packaging(ctx context.Context, id primitive.ObjectID) (*model.Packaging, error) {
	return findOne[model.Packaging](ctx, r.db.Packaging, bson.M{"_id": id})
}

// DeliveryZones returns every delivery zone.
func (r *CatalogRepository) DeliveryZones(ctx context.Context) ([]model.DeliveryZone, error) {
	return findAll[model.DeliveryZone](ctx, r.db.DeliveryZones, bson.M{})
}

// VolumeBreakpoints returns breakpoints scoped to the menu item when
// menuItemID is set, otherwise to the product type.
func (r *CatalogRepository) VolumeBreakpoints(ctx context.Context, menuItemID, productTypeID *primitive.ObjectID) ([]model.VolumeBreakpoint, error) {
	filter := bson.M{}
	switch {
	case menuItemID != nil:
		filter["menu_item_id"] = *menuItemID
	case productTypeID != nil:
		filter["product_type_id"] = *productTypeID
	}
	return findAll[model.VolumeBreakpoint](ctx, r.db.VolumeBreakpoints, filter)
}

// Vendor returns the vendor by id, or (nil, nil) when absent.
func (r *CatalogRepository) Vendor(ctx context.Context, id primitive.ObjectID) (*model.Vendor, error) {
	return findOne[model.Vendor](ctx, r.db.Vendors, bson.M{"_id": id})
}
