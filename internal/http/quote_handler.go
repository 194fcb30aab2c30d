package http

import (
	"github.com/gin-gonic/gin"
)

// ReviseQuote handles POST /api/quotes/:id/revisions requests.
// It clones the quote into a new draft revision at the end of its chain.
func (h *Handler) ReviseQuote(c *gin.Context) {
	quoteID, ok := pathID(c, "id")
	if !ok {
		return
	}

	revision, err := h.quotes.Revise(c.Request.Context(), quoteID)
	if err != nil {
		serviceError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessCreated(revision)
}
