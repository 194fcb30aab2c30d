package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IngredientDemand is the summed demand for one ingredient across orders.
type IngredientDemand struct {
	IngredientID  primitive.ObjectID `json:"ingredient_id"`
	Name          string             `json:"name"`
	Unit          string             `json:"unit"`
	Quantity      float64            `json:"quantity"`
	EstimatedCost float64            `json:"estimated_cost"`
}

// VendorGroup collects the demand lines for one preferred vendor.
type VendorGroup struct {
	VendorID      primitive.ObjectID `json:"vendor_id"`
	VendorName    string             `json:"vendor_name"`
	Items         []IngredientDemand `json:"items"`
	EstimatedCost float64            `json:"estimated_cost"`
}

// ShoppingList is the aggregated ingredient demand for a set of orders.
// Ingredients without a vendor link are reported under UnlinkedIngredients
// rather than dropped.
type ShoppingList struct {
	VendorGroups        []VendorGroup      `json:"vendor_groups"`
	UnlinkedIngredients []IngredientDemand `json:"unlinked_ingredients"`
	GrandTotal          float64            `json:"grand_total"`
	OrderCount          int                `json:"order_count"`
}
