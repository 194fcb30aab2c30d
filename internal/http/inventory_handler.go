package http

import (
	"github.com/gin-gonic/gin"
)

// StockAvailability handles GET /api/inventory/:sku/availability requests.
// The response is the SKU's usable stock as a FIFO consumption plan.
func (h *Handler) StockAvailability(c *gin.Context) {
	sku := c.Param("sku")

	avail, err := h.inventory.Availability(c.Request.Context(), sku)
	if err != nil {
		serviceError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessOK(avail)
}
