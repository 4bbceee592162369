package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/groenwerk/hovenier-api/internal/application/service"
	"github.com/groenwerk/hovenier-api/internal/presentation/http/dto/response"
)

// PublicHandler serves the unauthenticated share-link endpoints customers
// use to view and answer a quote
type PublicHandler struct {
	quoteService *service.QuoteService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(quoteService *service.QuoteService) *PublicHandler {
	return &PublicHandler{quoteService: quoteService}
}

// GetQuote resolves a share token to its quote
func (h *PublicHandler) GetQuote(c *gin.Context) {
	quote, err := h.quoteService.GetByShareToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// Respond records the customer's accept or reject answer
func (h *PublicHandler) Respond(c *gin.Context) {
	quote, err := h.quoteService.GetByShareToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req struct {
		Accepted bool   `json:"accepted"`
		Name     string `json:"name"`
		Note     string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.quoteService.Respond(c.Request.Context(), quote.ID, &service.RespondInput{
		Accepted: req.Accepted,
		Name:     req.Name,
		Note:     req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Response recorded successfully", updated)
}
