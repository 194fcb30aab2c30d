// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// CostingPreviewRequest is the JSON body for the costing preview endpoint.
// It carries the full order-shaped document; nothing is persisted.
type CostingPreviewRequest struct {
	model.CostingInput
}

// Validate performs shallow validation; the costing engine does the deep
// structural checks.
func (r *CostingPreviewRequest) Validate() error {
	if len(r.Tiers) == 0 {
		return &ValidationError{Field: "tiers", Message: "at least one tier is required"}
	}
	return nil
}

// VolumePriceRequest is the JSON body for the standalone volume pricing endpoint.
type VolumePriceRequest struct {
	MenuItemID    string  `json:"menu_item_id,omitempty"`
	ProductTypeID string  `json:"product_type_id,omitempty"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	BasePrice     float64 `json:"base_price"`
}

// Validate performs custom validation on the request.
func (r *VolumePriceRequest) Validate() error {
	if r.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Message: "must be a positive integer"}
	}
	if r.BasePrice < 0 {
		return &ValidationError{Field: "base_price", Message: "must be non-negative"}
	}
	if r.MenuItemID == "" && r.ProductTypeID == "" {
		return &ValidationError{Field: "menu_item_id", Message: "menu_item_id or product_type_id is required"}
	}
	return nil
}

// ScopeIDs parses the request's scope ids.
func (r *VolumePriceRequest) ScopeIDs() (menuItemID, productTypeID *primitive.ObjectID, err error) {
	if r.MenuItemID != "" {
		id, parseErr := primitive.ObjectIDFromHex(r.MenuItemID)
		if parseErr != nil {
			return nil, nil, &ValidationError{Field: "menu_item_id", Message: "must be a valid object id"}
		}
		menuItemID = &id
	}
	if r.ProductTypeID != "" {
		id, parseErr := primitive.ObjectIDFromHex(r.ProductTypeID)
		if parseErr != nil {
			return nil, nil, &ValidationError{Field: "product_type_id", Message: "must be a valid object id"}
		}
		productTypeID = &id
	}
	return menuItemID, productTypeID, nil
}

// GenerateTasksRequest is the JSON body for the task generation endpoint.
// ScheduleBase optionally overrides the order's event date as the offset anchor.
type GenerateTasksRequest struct {
	ScheduleBase *time.Time `json:"schedule_base,omitempty"`
}

// SignoffRequest is the JSON body for the task signoff endpoint.
type SignoffRequest struct {
	Type     string `json:"type" binding:"required"`
	SignedBy string `json:"signed_by,omitempty"`
}

// Validate performs custom validation on the request.
func (r *SignoffRequest) Validate() error {
	switch model.SignoffType(r.Type) {
	case model.SignoffStart, model.SignoffComplete:
		return nil
	default:
		return &ValidationError{Field: "type", Message: "must be START or COMPLETE"}
	}
}

// ShoppingListRequest is the JSON body for the shopping list endpoint.
type ShoppingListRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required,min=1"`
}

// Validate performs custom validation on the request.
func (r *ShoppingListRequest) Validate() error {
	if len(r.OrderIDs) == 0 {
		return &ValidationError{Field: "order_ids", Message: "at least one order id is required"}
	}
	return nil
}

// ParsedOrderIDs returns the request's order ids as object ids.
func (r *ShoppingListRequest) ParsedOrderIDs() ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(r.OrderIDs))
	for _, raw := range r.OrderIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, &ValidationError{Field: "order_ids", Message: "must contain valid object ids"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
