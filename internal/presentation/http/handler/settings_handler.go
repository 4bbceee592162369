package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/groenwerk/hovenier-api/internal/application/service"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles company settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles retrieving the company settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update handles a partial settings update
func (h *SettingsHandler) Update(c *gin.Context) {
	var req struct {
		DefaultMarginPercent *float64                  `json:"default_margin_percent"`
		VatPercent           *float64                  `json:"vat_percent"`
		DefaultHourlyRate    *float64                  `json:"default_hourly_rate"`
		PaymentTermDays      *int                      `json:"payment_term_days"`
		PerScopeMargins      map[enum.ScopeTag]float64 `json:"per_scope_margins"`
		CompanyInfo          *entity.CompanyInfo       `json:"company_info"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		DefaultMarginPercent: req.DefaultMarginPercent,
		VatPercent:           req.VatPercent,
		DefaultHourlyRate:    req.DefaultHourlyRate,
		PaymentTermDays:      req.PaymentTermDays,
		PerScopeMargins:      req.PerScopeMargins,
		CompanyInfo:          req.CompanyInfo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
