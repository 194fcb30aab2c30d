package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ovenline/bakeops/internal/domain/dto"
	"github.com/ovenline/bakeops/internal/domain/model"
)

// GenerateTasks handles POST /api/orders/:id/tasks requests.
// An empty body is accepted; the order's event date anchors the schedule.
func (h *Handler) GenerateTasks(c *gin.Context) {
	builder := NewResponseBuilder(c)

	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.GenerateTasksRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			builder.Error(http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	var base time.Time
	if req.ScheduleBase != nil {
		base = *req.ScheduleBase
	}

	tasks, err := h.tasks.GenerateTasks(c.Request.Context(), orderID, base)
	if err != nil {
		serviceError(c, err)
		return
	}
	if tasks == nil {
		tasks = []model.ProductionTask{}
	}

	builder.SuccessCreated(tasks)
}

// ListOrderTasks handles GET /api/orders/:id/tasks requests.
func (h *Handler) ListOrderTasks(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.tasks.TasksForOrder(c.Request.Context(), orderID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if tasks == nil {
		tasks = []model.ProductionTask{}
	}

	NewResponseBuilder(c).SuccessOK(tasks)
}

// Signoff handles POST /api/tasks/:id/signoffs requests.
func (h *Handler) Signoff(c *gin.Context) {
	builder := NewResponseBuilder(c)

	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	req, err := BuildRequestAndValidate[dto.SignoffRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	task, err := h.tasks.Signoff(c.Request.Context(), taskID, model.SignoffType(req.Type), req.SignedBy)
	if err != nil {
		serviceError(c, err)
		return
	}

	builder.SuccessOK(task)
}

// SignoffHistory handles GET /api/tasks/:id/signoffs requests.
func (h *Handler) SignoffHistory(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	signoffs, err := h.tasks.SignoffHistory(c.Request.Context(), taskID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if signoffs == nil {
		signoffs = []model.TaskSignoff{}
	}

	NewResponseBuilder(c).SuccessOK(signoffs)
}
