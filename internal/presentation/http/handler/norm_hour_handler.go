package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/application/service"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/presentation/http/dto/response"
)

// NormHourHandler handles norm-hours table HTTP requests
type NormHourHandler struct {
	normHourService *service.NormHourService
}

// NewNormHourHandler creates a new norm-hour handler
func NewNormHourHandler(normHourService *service.NormHourService) *NormHourHandler {
	return &NormHourHandler{normHourService: normHourService}
}

// List handles listing all norm-hour rows
func (h *NormHourHandler) List(c *gin.Context) {
	norms, err := h.normHourService.ListNormHours(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Norm hours retrieved successfully", norms)
}

// Upsert handles creating or replacing the norm-hour row of a scope
func (h *NormHourHandler) Upsert(c *gin.Context) {
	var req struct {
		Scope        enum.ScopeTag `json:"scope" binding:"required"`
		HoursPerUnit float64       `json:"hours_per_unit"`
		Unit         string        `json:"unit"`
		Description  *string       `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	norm, err := h.normHourService.UpsertNormHour(c.Request.Context(), &service.NormHourInput{
		Scope:        req.Scope,
		HoursPerUnit: req.HoursPerUnit,
		Unit:         req.Unit,
		Description:  req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Norm hours saved successfully", norm)
}

// Delete handles removing a norm-hour row
func (h *NormHourHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid norm hour ID")
		return
	}

	if err := h.normHourService.DeleteNormHour(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
