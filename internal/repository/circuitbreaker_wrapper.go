// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/circuitbreaker"
	"github.com/ovenline/bakeops/internal/domain/model"
)

// CatalogRepositoryWithCircuitBreaker wraps a catalog repository with circuit
// breaker protection. When the circuit is open reads fail fast; the costing
// engine treats the failure as a degraded match and flags the result as an
// estimate instead of erroring out.
type CatalogRepositoryWithCircuitBreaker struct {
	repo           CatalogRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCatalogRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCatalogRepositoryWithCircuitBreaker(repo CatalogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func execute[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = fn()
		return cbErr
	})
	return result, err
}

// Recipe returns the recipe with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) Recipe(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.Recipe, error) {
		return r.repo.Recipe(ctx, id)
	})
}

// RecipesByType returns recipes of the given type with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) RecipesByType(ctx context.Context, t model.RecipeType) ([]model.Recipe, error) {
	return execute(ctx, r.circuitBreaker, func() ([]model.Recipe, error) {
		return r.repo.RecipesByType(ctx, t)
	})
}

// Ingredient returns the ingredient with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) Ingredient(ctx context.Context, id primitive.ObjectID) (*model.Ingredient, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.Ingredient, error) {
		return r.repo.Ingredient(ctx, id)
	})
}

// TierSize returns the tier size with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) TierSize(ctx context.Context, id primitive.ObjectID) (*model.TierSize, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.TierSize, error) {
		return r.repo.TierSize(ctx, id)
	})
}

// LaborRole returns the labor role with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) LaborRole(ctx context.Context, id primitive.ObjectID) (*model.LaborRole, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.LaborRole, error) {
		return r.repo.LaborRole(ctx, id)
	})
}

// DecorationTechnique returns the technique with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) DecorationTechnique(ctx context.Context, id primitive.ObjectID) (*model.DecorationTechnique, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.DecorationTechnique, error) {
		return r.repo.DecorationTechnique(ctx, id)
	})
}

// Packaging returns the packaging SKU with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) Packaging(ctx context.Context, id primitive.ObjectID) (*model.Packaging, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.Packaging, error) {
		return r.repo.Packaging(ctx, id)
	})
}

// DeliveryZones returns all zones with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) DeliveryZones(ctx context.Context) ([]model.DeliveryZone, error) {
	return execute(ctx, r.circuitBreaker, func() ([]model.DeliveryZone, error) {
		return r.repo.DeliveryZones(ctx)
	})
}

// VolumeBreakpoints returns scoped breakpoints with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) VolumeBreakpoints(ctx context.Context, menuItemID, productTypeID *primitive.ObjectID) ([]model.VolumeBreakpoint, error) {
	return execute(ctx, r.circuitBreaker, func() ([]model.VolumeBreakpoint, error) {
		return r.repo.VolumeBreakpoints(ctx, menuItemID, productTypeID)
	})
}

// Vendor returns the vendor with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) Vendor(ctx context.Context, id primitive.ObjectID) (*model.Vendor, error) {
	return execute(ctx, r.circuitBreaker, func() (*model.Vendor, error) {
		return r.repo.Vendor(ctx, id)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CatalogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
