// Package model defines the core domain entities for the bakery operations service.
package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipeType identifies which component of a tier a recipe produces.
type RecipeType string

const (
	RecipeBatter   RecipeType = "BATTER"
	RecipeFilling  RecipeType = "FILLING"
	RecipeFrosting RecipeType = "FROSTING"
)

// RecipeIngredient is one (ingredient, quantity) line of a recipe.
// Quantity is denominated per one yield batch of the recipe.
type RecipeIngredient struct {
	IngredientID primitive.ObjectID `bson:"ingredient_id" json:"ingredient_id"`
	Quantity     float64            `bson:"quantity" json:"quantity"`
}

// Recipe is a batter, filling, or frosting recipe from the catalog.
// Recipes are immutable during a calculation; only catalog maintenance mutates them.
type Recipe struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Type         RecipeType          `bson:"type" json:"type"`
	YieldVolume  float64             `bson:"yield_volume" json:"yield_volume"` // ml; 0 means unknown
	LaborMinutes float64             `bson:"labor_minutes" json:"labor_minutes"`
	LaborRoleID  *primitive.ObjectID `bson:"labor_role_id,omitempty" json:"labor_role_id,omitempty"`
	Ingredients  []RecipeIngredient  `bson:"ingredients" json:"ingredients"`
}

// Ingredient is a purchasable raw material with its cost basis.
type Ingredient struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Unit        string              `bson:"unit" json:"unit"`
	CostPerUnit float64             `bson:"cost_per_unit" json:"cost_per_unit"`
	VendorID    *primitive.ObjectID `bson:"vendor_id,omitempty" json:"vendor_id,omitempty"` // preferred vendor
}

// TierSize describes one standard cake tier dimension and its defaults.
type TierSize struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name                string              `bson:"name" json:"name"`
	Volume              float64             `bson:"volume" json:"volume"` // ml
	Servings            int                 `bson:"servings" json:"servings"`
	DefaultBatterID     *primitive.ObjectID `bson:"default_batter_id,omitempty" json:"default_batter_id,omitempty"`
	DefaultBatterMult   float64             `bson:"default_batter_mult,omitempty" json:"default_batter_mult,omitempty"`
	DefaultFrostingID   *primitive.ObjectID `bson:"default_frosting_id,omitempty" json:"default_frosting_id,omitempty"`
	DefaultFrostingMult float64             `bson:"default_frosting_mult,omitempty" json:"default_frosting_mult,omitempty"`
	AssemblyMinutes     float64             `bson:"assembly_minutes" json:"assembly_minutes"`
	AssemblyRoleID      *primitive.ObjectID `bson:"assembly_role_id,omitempty" json:"assembly_role_id,omitempty"`
}

// LaborRole is a billable role with an hourly rate.
type LaborRole struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	HourlyRate float64            `bson:"hourly_rate" json:"hourly_rate"`
}

// DecorationUnit determines how a decoration's quantity scales.
type DecorationUnit string

const (
	// DecorationPerEach bills the quantity as-is.
	DecorationPerEach DecorationUnit = "EACH"
	// DecorationPerTier multiplies the quantity by the order's tier count.
	DecorationPerTier DecorationUnit = "TIER"
)

// DecorationTechnique is a catalog decoration with default cost and labor.
type DecorationTechnique struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name               string              `bson:"name" json:"name"`
	Category           string              `bson:"category" json:"category"`
	Unit               DecorationUnit      `bson:"unit" json:"unit"`
	DefaultCostPerUnit float64             `bson:"default_cost_per_unit" json:"default_cost_per_unit"`
	LaborMinutes       float64             `bson:"labor_minutes" json:"labor_minutes"`
	LaborRoleID        *primitive.ObjectID `bson:"labor_role_id,omitempty" json:"labor_role_id,omitempty"`
}

// Packaging is a box, board, or other packaging SKU.
type Packaging struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	CostPerUnit float64            `bson:"cost_per_unit" json:"cost_per_unit"`
}

// DeliveryZone is a distance band with its fee structure.
// The band covers [MinDistance, MaxDistance) miles; a nil MaxDistance is unbounded.
// A nil PerMileFee means the base fee applies flat regardless of distance.
type DeliveryZone struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	MinDistance float64            `bson:"min_distance" json:"min_distance"`
	MaxDistance *float64           `bson:"max_distance,omitempty" json:"max_distance,omitempty"`
	BaseFee     float64            `bson:"base_fee" json:"base_fee"`
	PerMileFee  *float64           `bson:"per_mile_fee,omitempty" json:"per_mile_fee,omitempty"`
}

// VolumeBreakpoint is a quantity band with a discount or fixed unit price.
// Exactly one of MenuItemID and ProductTypeID scopes the breakpoint.
// PricePerUnit takes precedence over DiscountPercent when both are set.
type VolumeBreakpoint struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	MenuItemID      *primitive.ObjectID `bson:"menu_item_id,omitempty" json:"menu_item_id,omitempty"`
	ProductTypeID   *primitive.ObjectID `bson:"product_type_id,omitempty" json:"product_type_id,omitempty"`
	MinQuantity     int                 `bson:"min_quantity" json:"min_quantity"`
	MaxQuantity     *int                `bson:"max_quantity,omitempty" json:"max_quantity,omitempty"`
	DiscountPercent *float64            `bson:"discount_percent,omitempty" json:"discount_percent,omitempty"`
	PricePerUnit    *float64            `bson:"price_per_unit,omitempty" json:"price_per_unit,omitempty"`
}

// Valid reports whether the breakpoint is well-formed: it must be scoped to
// exactly one of menu item or product type, and a present MaxQuantity must not
// be below MinQuantity.
func (b VolumeBreakpoint) Valid() bool {
	if (b.MenuItemID == nil) == (b.ProductTypeID == nil) {
		return false
	}
	if b.MinQuantity < 0 {
		return false
	}
	if b.MaxQuantity != nil && *b.MaxQuantity < b.MinQuantity {
		return false
	}
	return true
}

// Vendor is a supplier ingredients can be linked to.
type Vendor struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email,omitempty" json:"email,omitempty"`
}
