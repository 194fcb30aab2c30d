package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

// CachedCatalogRepository decorates a catalog repository with a TTL cache.
// Catalog documents change only through maintenance, so a short TTL keeps the
// hot costing path off the database without a separate invalidation protocol.
// Capacity is bounded; when full, expired entries are evicted first and the
// write is dropped if none are.
type CachedCatalogRepository struct {
	inner    CatalogRepositoryInterface
	ttl      time.Duration
	capacity int

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// NewCachedCatalogRepository wraps inner with a TTL cache of the given
// capacity. A non-positive ttl or capacity disables caching.
func NewCachedCatalogRepository(inner CatalogRepositoryInterface, ttl time.Duration, capacity int) *CachedCatalogRepository {
	return &CachedCatalogRepository{
		inner:    inner,
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]cacheEntry),
	}
}

func (c *CachedCatalogRepository) enabled() bool {
	return c.ttl > 0 && c.capacity > 0
}

func (c *CachedCatalogRepository) get(key string) (interface{}, bool) {
	if !c.enabled() {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (c *CachedCatalogRepository) put(key string, value interface{}) {
	if !c.enabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.capacity {
		now := time.Now()
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
		if len(c.entries) >= c.capacity {
			return
		}
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Invalidate drops every cached entry. Call after catalog maintenance writes.
func (c *CachedCatalogRepository) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Recipe implements CatalogRepositoryInterface.
func (c *CachedCatalogRepository) Recipe(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	key := "recipe:" + id.Hex()
	if v, ok := c.get(key); ok {
		return v.(*model.Recipe), nil
	}
	recipe, err := c.inner.Recipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe != nil {
		c.put(key, recipe)
	}
	return recipe, nil
}

// RecipesByType implements CatalogRepositoryInterface.
func (c *CachedCatalogRepository) RecipesByType(ctx context.Context, t model.RecipeType) ([]model.Recipe, error) {
	key := "recipes:" + string(t)
	if v, ok := c.get(key); ok {
		return v.([]model.Recipe), nil
	}
	recipes, err := c.inner.RecipesByType(ctx, t)
	if err != nil {
		return nil, err
	}
	c.put(key, recipes)
	return recipes, nil
}

// Ingredient implements CatalogRepositoryInterface.
func (c *CachedCatalogRepository) Ingredient(ctx context.Context, id primitive.ObjectID) (*model.Ingredient, error) {
	key := "ingredient:" + id.Hex()
	if v, ok := c.get(key); ok {
		return v.(*model.Ingredient), nil
	}
	ing, err := c.inner.Ingredient(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing != nil {
		c.put(key, ing)
	}
	return ing, nil
}

// TierSize implements CatalogRepositoryInterface.
func (c *CachedCatalogRepository) TierSize(ctx context.Context, id primitive.ObjectID) (*model.TierSize, error) {
	key := "tier_size:" + id.Hex()
	if v, ok := c.get(key); ok {
		return v.(*model.TierSize), nil
	}
	size, err := c.inner.TierSize(ctx, id)
	if err != nil {
		return nil, err
	}
	if size != nil {
		c.put(key, size)
	}
	return size, nil
}

// LaborRole implements CatalogRepositoryInterface.
func (c *CachedCatalogRepository) LaborRole(ctx context.Context, id primitive.ObjectID) (*model.LaborRole, error) {
	key := "labor_role:" + id.Hex()
	if v, ok := c.get(key); ok {
		return v.(*model.LaborRole), nil
	}
	role, err := c.inner.LaborRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != nil {
		c.put(key, role)
	}
	return role, nil
}

// DecorationTechnique implements CatalogRepositoryInterface.
func (c *CachedCatalogRepository) DecorationTechnique(ctx context.Context, id primitive.ObjectID) (*model.DecorationTechnique, error) {
	key := "technique:" + id.Hex()
	if v, ok := c.get(key); ok {
		return v.(*model.DecorationTechnique), nil
	}
	tech, err := c.inner.DecorationTechnique(ctx, id)
	if err != nil {
		return nil, err
	}
	if tech != nil {
		c.put(key, tech)
	}
	return tech, nil
}

// Packaging implements CatalogRepositoryInterface.
func (c *CachedCatalogRepository) Packaging(ctx context.Context, id primitive.ObjectID) (*model.Packaging, error) {
	key := "packaging:" + id.Hex()
	if v, ok := c.get(key); ok {
		return v.(*model.Packaging), nil
	}
	pkg, err := c.inner.Packaging(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg != nil {
		c.put(key, pkg)
	}
	return pkg, nil
}

// DeliveryZones implements CatalogRepositoryInterface.
func (c *CachedCatalogRepository) DeliveryZones(ctx context.Context) ([]model.DeliveryZone, error) {
	const key = "delivery_zones"
	if v, ok := c.get(key); ok {
		return v.([]model.DeliveryZone), nil
	}
	zones, err := c.inner.DeliveryZones(ctx)
	if err != nil {
		return nil, err
	}
	c.put(key, zones)
	return zones, nil
}

// VolumeBreakpoints implements CatalogRepositoryInterface.
func (c *CachedCatalogRepository) VolumeBreakpoints(ctx context.Context, menuItemID, productTypeID *primitive.ObjectID) ([]model.VolumeBreakpoint, error) {
	key := "breakpoints:"
	switch {
	case menuItemID != nil:
		key += "m:" + menuItemID.Hex()
	case productTypeID != nil:
		key += "p:" + productTypeID.Hex()
	}
	if v, ok := c.get(key); ok {
		return v.([]model.VolumeBreakpoint), nil
	}
	breakpoints, err := c.inner.VolumeBreakpoints(ctx, menuItemID, productTypeID)
	if err != nil {
		return nil, err
	}
	c.put(key, breakpoints)
	return breakpoints, nil
}

// Vendor implements CatalogRepositoryInterface.
func (c *CachedCatalogRepository) Vendor(ctx context.Context, id primitive.ObjectID) (*model.Vendor, error) {
	key := "vendor:" + id.Hex()
	if v, ok := c.get(key); ok {
		return v.(*model.Vendor), nil
	}
	vendor, err := c.inner.Vendor(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor != nil {
		c.put(key, vendor)
	}
	return vendor, nil
}
