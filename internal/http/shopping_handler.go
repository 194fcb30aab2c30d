package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ovenline/bakeops/internal/domain/dto"
)

// BuildShoppingList handles POST /api/shopping-list requests.
// It aggregates ingredient demand across the given orders and groups the
// result by preferred vendor.
func (h *Handler) BuildShoppingList(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ShoppingListRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	orderIDs, err := req.ParsedOrderIDs()
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	list, err := h.shopping.BuildList(c.Request.Context(), orderIDs)
	if err != nil {
		serviceError(c, err)
		return
	}

	builder.SuccessOK(list)
}
