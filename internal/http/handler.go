// Package http provides the HTTP surface of the bakery operations service.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/service"
)

// Handler provides HTTP handlers for the costing, quoting, and production routes.
type Handler struct {
	costing   service.CostingService
	pricer    *service.VolumePricer
	quotes    service.QuoteService
	tasks     service.TaskService
	shopping  service.ShoppingService
	inventory service.InventoryService
}

// NewHandler creates a new Handler instance.
func NewHandler(
	costing service.CostingService,
	pricer *service.VolumePricer,
	quotes service.QuoteService,
	tasks service.TaskService,
	shopping service.ShoppingService,
	inventory service.InventoryService,
) *Handler {
	return &Handler{
		costing:   costing,
		pricer:    pricer,
		quotes:    quotes,
		tasks:     tasks,
		shopping:  shopping,
		inventory: inventory,
	}
}

// statusFromError maps service errors to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrQuoteNotFound),
		errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// serviceError writes the error with its mapped status.
func serviceError(c *gin.Context, err error) {
	status := statusFromError(err)
	message := "An unexpected error occurred"
	if status != http.StatusInternalServerError {
		message = err.Error()
	}
	NewResponseBuilder(c).Error(status, message, err)
}

// pathID parses the named path parameter as an ObjectID.
func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		NewResponseBuilder(c).Error(http.StatusBadRequest, name+" must be a valid object id", err)
		return primitive.NilObjectID, false
	}
	return id, true
}
