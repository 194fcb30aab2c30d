package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ovenline/bakeops/internal/domain/dto"
)

// PreviewCosting handles POST /api/costing/preview requests.
// It computes a full cost and price breakdown for the submitted order-shaped
// document without persisting anything.
func (h *Handler) PreviewCosting(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CostingPreviewRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	breakdown, err := h.costing.Preview(c.Request.Context(), req.CostingInput)
	if err != nil {
		serviceError(c, err)
		return
	}

	builder.SuccessOK(breakdown)
}

// FinalizeOrderCosting handles POST /api/orders/:id/costing requests.
// It recomputes the order's breakdown from its stored document and persists a
// new costing version.
func (h *Handler) FinalizeOrderCosting(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	breakdown, err := h.costing.FinalizeOrder(c.Request.Context(), orderID)
	if err != nil {
		serviceError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessOK(breakdown)
}

// VolumePrice handles POST /api/pricing/volume requests.
func (h *Handler) VolumePrice(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.VolumePriceRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	menuItemID, productTypeID, err := req.ScopeIDs()
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	result, err := h.pricer.Price(c.Request.Context(), menuItemID, productTypeID, req.Quantity, req.BasePrice)
	if err != nil {
		serviceError(c, err)
		return
	}

	builder.SuccessOK(result)
}
