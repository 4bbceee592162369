package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/application/autosave"
	"github.com/groenwerk/hovenier-api/internal/application/service"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/domain/estimation"
	"github.com/groenwerk/hovenier-api/internal/presentation/http/dto/response"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
	drafts       *autosave.DraftStore
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, drafts *autosave.DraftStore) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		drafts:       drafts,
	}
}

// List handles listing quotes
func (h *QuoteHandler) List(c *gin.Context) {
	input := &service.ListQuotesInput{
		Pagination: paginationParams(c),
		Search:     c.Query("search"),
		Status:     quoteStatusFromQuery(c),
		Type:       quoteTypeFromQuery(c),
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &customerID
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// Create handles creating a quote
func (h *QuoteHandler) Create(c *gin.Context) {
	var req struct {
		Type       enum.QuoteType  `json:"type"`
		CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
		Scopes     []enum.ScopeTag `json:"scopes"`
		Notes      *string         `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &service.CreateQuoteInput{
		Type:       req.Type,
		CustomerID: req.CustomerID,
		Scopes:     req.Scopes,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// Get handles getting a single quote with derived totals
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// Update handles updating the quote header
func (h *QuoteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req struct {
		CustomerID *uuid.UUID      `json:"customer_id"`
		Scopes     []enum.ScopeTag `json:"scopes"`
		Notes      *string         `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), &service.UpdateQuoteInput{
		ID:         id,
		CustomerID: req.CustomerID,
		Scopes:     req.Scopes,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated successfully", quote)
}

// lineItemRequest is the wire shape of a quote line
type lineItemRequest struct {
	Scope                 enum.ScopeTag `json:"scope"`
	Description           string        `json:"description" binding:"required"`
	Unit                  string        `json:"unit"`
	Quantity              float64       `json:"quantity"`
	UnitPrice             float64       `json:"unit_price"`
	Kind                  enum.LineKind `json:"kind"`
	MarginPercentOverride *float64      `json:"margin_percent_override"`
	Position              int           `json:"position"`
}

func (r *lineItemRequest) toInput() *service.LineItemInput {
	return &service.LineItemInput{
		Scope:                 r.Scope,
		Description:           r.Description,
		Unit:                  r.Unit,
		Quantity:              r.Quantity,
		UnitPrice:             r.UnitPrice,
		Kind:                  r.Kind,
		MarginPercentOverride: r.MarginPercentOverride,
		Position:              r.Position,
	}
}

// AddLineItem handles adding a line to a quote
func (h *QuoteHandler) AddLineItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req lineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.quoteService.AddLineItem(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Line item added successfully", item)
}

// UpdateLineItem handles updating an existing line
func (h *QuoteHandler) UpdateLineItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "Invalid line item ID")
		return
	}

	var req lineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.quoteService.UpdateLineItem(c.Request.Context(), id, itemID, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item updated successfully", item)
}

// RemoveLineItem handles deleting a line from a quote
func (h *QuoteHandler) RemoveLineItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "Invalid line item ID")
		return
	}

	if err := h.quoteService.RemoveLineItem(c.Request.Context(), id, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// SaveEstimation handles running and storing the voorcalculatie
func (h *QuoteHandler) SaveEstimation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var input estimation.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.SaveEstimation(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	// a committed estimation supersedes any pending draft
	h.drafts.Discard(id)

	response.OK(c, "Estimation saved successfully", quote)
}

// UpdateDraft handles an autosaved estimation draft edit. The draft is
// committed in the background once the edits settle.
func (h *QuoteHandler) UpdateDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var input estimation.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	h.drafts.Update(id, input)

	response.OK(c, "Draft recorded", h.drafts.Status(id))
}

// DraftStatus reports the autosave state of a quote's estimation draft
func (h *QuoteHandler) DraftStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	response.OK(c, "Draft status retrieved", h.drafts.Status(id))
}

// FlushDraft commits a pending estimation draft immediately
func (h *QuoteHandler) FlushDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.drafts.Flush(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft saved", h.drafts.Status(id))
}

// Send handles sending a quote to the customer
func (h *QuoteHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.Send(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote sent successfully", gin.H{
		"quote":       quote,
		"share_token": quote.ShareToken,
	})
}

// Reopen handles reopening a rejected quote
func (h *QuoteHandler) Reopen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.Reopen(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote reopened successfully", quote)
}

// Recalculate handles the destructive line regeneration. The caller must
// confirm explicitly because manual line edits are replaced.
func (h *QuoteHandler) Recalculate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if !req.Confirm {
		response.BadRequest(c, "Recalculation replaces all line items and must be confirmed")
		return
	}

	quote, err := h.quoteService.Recalculate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote recalculated successfully", quote)
}
