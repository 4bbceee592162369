package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/application/service"
	"github.com/groenwerk/hovenier-api/internal/presentation/http/dto/response"
)

// WorkflowHandler serves the derived workflow overview
type WorkflowHandler struct {
	workflowService *service.WorkflowService
}

// NewWorkflowHandler creates a new workflow handler
func NewWorkflowHandler(workflowService *service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService}
}

// Get handles retrieving the workflow overview for a quote
func (h *WorkflowHandler) Get(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	overview, err := h.workflowService.GetOverview(c.Request.Context(), quoteID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Workflow overview retrieved successfully", overview)
}
