package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComponentKind names the three recipe slots of a tier.
type ComponentKind string

const (
	ComponentBatter   ComponentKind = "batter"
	ComponentFilling  ComponentKind = "filling"
	ComponentFrosting ComponentKind = "frosting"
)

// ComponentMatch is the per-component recipe-match detail of a tier costing.
// IsEstimate flags degraded resolution: an unmatched recipe, a missing labor
// role, or a multiplier that fell back to 1.0.
type ComponentMatch struct {
	Kind           ComponentKind       `bson:"kind" json:"kind"`
	RecipeID       *primitive.ObjectID `bson:"recipe_id,omitempty" json:"recipe_id,omitempty"`
	RecipeName     string              `bson:"recipe_name,omitempty" json:"recipe_name,omitempty"`
	Multiplier     float64             `bson:"multiplier" json:"multiplier"`
	IngredientCost float64             `bson:"ingredient_cost" json:"ingredient_cost"`
	LaborCost      float64             `bson:"labor_cost" json:"labor_cost"`
	IsEstimate     bool                `bson:"is_estimate" json:"is_estimate"`
	Note           string              `bson:"note,omitempty" json:"note,omitempty"`
}

// TierCosting is the cost detail for one tier.
type TierCosting struct {
	TierIndex         int                `bson:"tier_index" json:"tier_index"`
	TierSizeID        primitive.ObjectID `bson:"tier_size_id" json:"tier_size_id"`
	Servings          int                `bson:"servings" json:"servings"`
	Components        []ComponentMatch   `bson:"components" json:"components"`
	AssemblyLaborCost float64            `bson:"assembly_labor_cost" json:"assembly_labor_cost"`
	IngredientCost    float64            `bson:"ingredient_cost" json:"ingredient_cost"`
	LaborCost         float64            `bson:"labor_cost" json:"labor_cost"`
	IsEstimate        bool               `bson:"is_estimate" json:"is_estimate"`
}

// DeliveryCostDetail records how the delivery fee was derived.
type DeliveryCostDetail struct {
	ZoneID     *primitive.ObjectID `bson:"zone_id,omitempty" json:"zone_id,omitempty"`
	ZoneName   string              `bson:"zone_name,omitempty" json:"zone_name,omitempty"`
	Miles      float64             `bson:"miles" json:"miles"`
	Minutes    float64             `bson:"minutes,omitempty" json:"minutes,omitempty"`
	IsEstimate bool                `bson:"is_estimate" json:"is_estimate"`
}

// ItemPricing is the volume-priced total for the order's menu line items.
type ItemPricing struct {
	OriginalTotal   float64 `bson:"original_total" json:"original_total"`
	DiscountedTotal float64 `bson:"discounted_total" json:"discounted_total"`
	Savings         float64 `bson:"savings" json:"savings"`
}

// CostBreakdown is the structured result of a costing run.
// All currency values are rounded to 2 decimal places at assembly time;
// intermediate arithmetic is exact.
type CostBreakdown struct {
	OrderID                *primitive.ObjectID `bson:"order_id,omitempty" json:"order_id,omitempty"`
	QuoteID                *primitive.ObjectID `bson:"quote_id,omitempty" json:"quote_id,omitempty"`
	Tiers                  []TierCosting       `bson:"tiers" json:"tiers"`
	IngredientCost         float64             `bson:"ingredient_cost" json:"ingredient_cost"`
	LaborCost              float64             `bson:"labor_cost" json:"labor_cost"`
	DecorationMaterialCost float64             `bson:"decoration_material_cost" json:"decoration_material_cost"`
	DecorationLaborCost    float64             `bson:"decoration_labor_cost" json:"decoration_labor_cost"`
	DeliveryCost           float64             `bson:"delivery_cost" json:"delivery_cost"`
	TopperCost             float64             `bson:"topper_cost" json:"topper_cost"`
	PackagingCost          float64             `bson:"packaging_cost" json:"packaging_cost"`
	TotalCost              float64             `bson:"total_cost" json:"total_cost"`
	SuggestedPrice         float64             `bson:"suggested_price" json:"suggested_price"`
	FinalPrice             float64             `bson:"final_price" json:"final_price"`
	PricePerServing        *float64            `bson:"price_per_serving,omitempty" json:"price_per_serving,omitempty"`
	TotalServings          int                 `bson:"total_servings" json:"total_servings"`
	Delivery               *DeliveryCostDetail `bson:"delivery,omitempty" json:"delivery,omitempty"`
	Items                  *ItemPricing        `bson:"items,omitempty" json:"items,omitempty"`
	Estimates              []string            `bson:"estimates,omitempty" json:"estimates,omitempty"`
	IsEstimate             bool                `bson:"is_estimate" json:"is_estimate"`
	Version                int                 `bson:"version" json:"version"`
	ComputedAt             time.Time           `bson:"computed_at" json:"computed_at"`
}

// VolumePriceResult is the outcome of a volume pricing lookup.
type VolumePriceResult struct {
	OriginalPrice      float64             `json:"original_price"`
	DiscountedPrice    float64             `json:"discounted_price"`
	DiscountPercent    float64             `json:"discount_percent"`
	Savings            float64             `json:"savings"`
	AppliedBreakpointID *primitive.ObjectID `json:"applied_breakpoint_id,omitempty"`
}

// PriceQuote is the output of price finalization.
// PricePerServing is nil when the order has zero servings.
type PriceQuote struct {
	SuggestedPrice  float64  `json:"suggested_price"`
	FinalPrice      float64  `json:"final_price"`
	PricePerServing *float64 `json:"price_per_serving,omitempty"`
}
