// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

// CatalogRepositoryInterface is the read-only view of the catalog store.
// Lookups return (nil, nil) when the referenced document does not exist; the
// calculation core treats a missing reference as a degraded match, not an error.
type CatalogRepositoryInterface interface {
	Recipe(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error)
	RecipesByType(ctx context.Context, t model.RecipeType) ([]model.Recipe, error)
	Ingredient(ctx context.Context, id primitive.ObjectID) (*model.Ingredient, error)
	TierSize(ctx context.Context, id primitive.ObjectID) (*model.TierSize, error)
	LaborRole(ctx context.Context, id primitive.ObjectID) (*model.LaborRole, error)
	DecorationTechnique(ctx context.Context, id primitive.ObjectID) (*model.DecorationTechnique, error)
	Packaging(ctx context.Context, id primitive.ObjectID) (*model.Packaging, error)
	DeliveryZones(ctx context.Context) ([]model.DeliveryZone, error)
	// VolumeBreakpoints returns breakpoints scoped to the menu item when
	// menuItemID is set, otherwise to the product type.
	VolumeBreakpoints(ctx context.Context, menuItemID, productTypeID *primitive.ObjectID) ([]model.VolumeBreakpoint, error)
	Vendor(ctx context.Context, id primitive.ObjectID) (*model.Vendor, error)
}

// OrderRepositoryInterface provides order reads and finalize-mode persistence.
type OrderRepositoryInterface interface {
	Order(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	Orders(ctx context.Context, ids []primitive.ObjectID) ([]model.Order, error)
	// SaveCosting persists the breakdown for the order, replacing any previous
	// one and bumping its version. Atomic at single-order granularity.
	SaveCosting(ctx context.Context, orderID primitive.ObjectID, breakdown *model.CostBreakdown) error
	LatestCosting(ctx context.Context, orderID primitive.ObjectID) (*model.CostBreakdown, error)
	UpdateProductionStatus(ctx context.Context, orderID primitive.ObjectID, status model.ProductionStatus) error
}

// QuoteRepositoryInterface provides quote reads and revision persistence.
type QuoteRepositoryInterface interface {
	Quote(ctx context.Context, id primitive.ObjectID) (*model.Quote, error)
	// QuotesInChain returns every quote in the revision chain rooted at rootID,
	// including the root itself.
	QuotesInChain(ctx context.Context, rootID primitive.ObjectID) ([]model.Quote, error)
	// InsertRevision inserts the cloned quote. Children are embedded in the
	// quote document, so the clone commits atomically or not at all.
	InsertRevision(ctx context.Context, q *model.Quote) error
}

// TaskRepositoryInterface provides production task and signoff persistence.
type TaskRepositoryInterface interface {
	Task(ctx context.Context, id primitive.ObjectID) (*model.ProductionTask, error)
	TasksByOrder(ctx context.Context, orderID primitive.ObjectID) ([]model.ProductionTask, error)
	InsertTasks(ctx context.Context, tasks []model.ProductionTask) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.TaskStatus) error
	// UnblockDependents transitions BLOCKED tasks whose depends_on_id equals
	// completedID to PENDING and returns the tasks it transitioned.
	UnblockDependents(ctx context.Context, completedID primitive.ObjectID) ([]model.ProductionTask, error)
	RecordSignoff(ctx context.Context, s *model.TaskSignoff) error
	SignoffsByTask(ctx context.Context, taskID primitive.ObjectID) ([]model.TaskSignoff, error)
}

// InventoryRepositoryInterface provides inventory lot reads.
type InventoryRepositoryInterface interface {
	// LotsBySKU returns the SKU's lots ordered by produced_at ascending.
	LotsBySKU(ctx context.Context, sku string) ([]model.InventoryLot, error)
}
