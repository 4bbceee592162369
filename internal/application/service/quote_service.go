package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/domain/estimation"
	"github.com/groenwerk/hovenier-api/internal/domain/pricing"
	"github.com/groenwerk/hovenier-api/internal/domain/repository"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
	"github.com/groenwerk/hovenier-api/pkg/pagination"
	"github.com/groenwerk/hovenier-api/pkg/sharetoken"
)

// QuoteService handles offerte operations: drafting, line items, the
// voorcalculatie, sending and the customer's response.
type QuoteService struct {
	quoteRepo    repository.QuoteRepository
	lineItemRepo repository.QuoteLineItemRepository
	customerRepo repository.CustomerRepository
	projectRepo  repository.ProjectRepository
	settingsRepo repository.SettingsRepository
	normHourRepo repository.NormHourRepository
	sequenceRepo repository.NumberSequenceRepository
	txManager    repository.TransactionManager
	shareTokens  *sharetoken.Manager
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	lineItemRepo repository.QuoteLineItemRepository,
	customerRepo repository.CustomerRepository,
	projectRepo repository.ProjectRepository,
	settingsRepo repository.SettingsRepository,
	normHourRepo repository.NormHourRepository,
	sequenceRepo repository.NumberSequenceRepository,
	txManager repository.TransactionManager,
	shareTokens *sharetoken.Manager,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		lineItemRepo: lineItemRepo,
		customerRepo: customerRepo,
		projectRepo:  projectRepo,
		settingsRepo: settingsRepo,
		normHourRepo: normHourRepo,
		sequenceRepo: sequenceRepo,
		txManager:    txManager,
		shareTokens:  shareTokens,
	}
}

// QuoteWithTotals pairs a quote with its derived totals. Totals are never
// persisted; they are recomputed from the line items on every read.
type QuoteWithTotals struct {
	*entity.Quote
	Totals pricing.Totals `json:"totals"`
}

// CreateQuoteInput represents the input for creating a quote
type CreateQuoteInput struct {
	Type       enum.QuoteType
	CustomerID uuid.UUID
	Scopes     []enum.ScopeTag
	Notes      *string
}

// CreateQuote creates a new quote in concept status
func (s *QuoteService) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load customer", err)
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	number, err := s.sequenceRepo.Next(ctx, entity.SequenceKindQuote, time.Now().Year())
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to issue quote number", err)
	}

	quote := &entity.Quote{
		Number:     number,
		Type:       input.Type,
		CustomerID: input.CustomerID,
		Status:     enum.QuoteStatusConcept,
		Scopes:     input.Scopes,
		Notes:      input.Notes,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, apperror.NewPersistenceError("Failed to create quote", err)
	}

	return s.quoteRepo.GetWithLineItems(ctx, quote.ID)
}

// GetQuote retrieves a quote with its line items and derived totals
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*QuoteWithTotals, error) {
	quote, err := s.quoteRepo.GetWithLineItems(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load quote", err)
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	totals, err := s.computeTotals(ctx, quote.LineItems)
	if err != nil {
		return nil, err
	}
	return &QuoteWithTotals{Quote: quote, Totals: totals}, nil
}

// ListQuotesInput represents the input for listing quotes
type ListQuotesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	Type       *enum.QuoteType
	CustomerID *uuid.UUID
}

// ListQuotes lists quotes with filtering
func (s *QuoteService) ListQuotes(ctx context.Context, input *ListQuotesInput) (*pagination.PaginatedResult[entity.Quote], error) {
	params := &repository.QuoteFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		Type:       input.Type,
		CustomerID: input.CustomerID,
	}

	quotes, total, err := s.quoteRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list quotes", err)
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// UpdateQuoteInput represents the editable header fields of a quote
type UpdateQuoteInput struct {
	ID         uuid.UUID
	CustomerID *uuid.UUID
	Scopes     []enum.ScopeTag
	Notes      *string
}

// UpdateQuote updates the quote header. Only concept and voorcalculatie
// quotes may be edited.
func (s *QuoteService) UpdateQuote(ctx context.Context, input *UpdateQuoteInput) (*entity.Quote, error) {
	quote, err := s.editableQuote(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, apperror.NewPersistenceError("Failed to load customer", err)
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		quote.CustomerID = *input.CustomerID
	}
	if input.Scopes != nil {
		quote.Scopes = input.Scopes
	}
	quote.Notes = input.Notes

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, apperror.NewPersistenceError("Failed to update quote", err)
	}
	return s.quoteRepo.GetWithLineItems(ctx, quote.ID)
}

// LineItemInput represents a line item draft or patch
type LineItemInput struct {
	Scope                 enum.ScopeTag
	Description           string
	Unit                  string
	Quantity              float64
	UnitPrice             float64
	Kind                  enum.LineKind
	MarginPercentOverride *float64
	Position              int
}

// AddLineItem appends a line to an editable quote. The line total is
// recomputed here, never taken from the caller.
func (s *QuoteService) AddLineItem(ctx context.Context, quoteID uuid.UUID, input *LineItemInput) (*entity.QuoteLineItem, error) {
	quote, err := s.editableQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	item := &entity.QuoteLineItem{
		QuoteID:               quote.ID,
		Scope:                 input.Scope,
		Description:           input.Description,
		Unit:                  input.Unit,
		Quantity:              input.Quantity,
		UnitPrice:             input.UnitPrice,
		Kind:                  input.Kind,
		MarginPercentOverride: input.MarginPercentOverride,
		Position:              input.Position,
	}
	if err := item.Normalize(); err != nil {
		return nil, err
	}

	if err := s.lineItemRepo.Create(ctx, item); err != nil {
		return nil, apperror.NewPersistenceError("Failed to create line item", err)
	}
	return item, nil
}

// UpdateLineItem patches an existing line and recomputes its total
func (s *QuoteService) UpdateLineItem(ctx context.Context, quoteID, itemID uuid.UUID, input *LineItemInput) (*entity.QuoteLineItem, error) {
	if _, err := s.editableQuote(ctx, quoteID); err != nil {
		return nil, err
	}

	item, err := s.lineItemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load line item", err)
	}
	if item == nil || item.QuoteID != quoteID {
		return nil, apperror.NewNotFoundError("Line item")
	}

	item.Scope = input.Scope
	item.Description = input.Description
	item.Unit = input.Unit
	item.Quantity = input.Quantity
	item.UnitPrice = input.UnitPrice
	item.Kind = input.Kind
	item.MarginPercentOverride = input.MarginPercentOverride
	item.Position = input.Position
	if err := item.Normalize(); err != nil {
		return nil, err
	}

	if err := s.lineItemRepo.Update(ctx, item); err != nil {
		return nil, apperror.NewPersistenceError("Failed to update line item", err)
	}
	return item, nil
}

// RemoveLineItem deletes a line from an editable quote
func (s *QuoteService) RemoveLineItem(ctx context.Context, quoteID, itemID uuid.UUID) error {
	if _, err := s.editableQuote(ctx, quoteID); err != nil {
		return err
	}

	item, err := s.lineItemRepo.GetByID(ctx, itemID)
	if err != nil {
		return apperror.NewPersistenceError("Failed to load line item", err)
	}
	if item == nil || item.QuoteID != quoteID {
		return apperror.NewNotFoundError("Line item")
	}

	if err := s.lineItemRepo.Delete(ctx, itemID); err != nil {
		return apperror.NewPersistenceError("Failed to delete line item", err)
	}
	return nil
}

// SaveEstimation runs the voorcalculatie from the supplied scope data and
// stores both the input and the result on the quote. Re-running with the
// same input yields the same result, so this is safe to call repeatedly.
func (s *QuoteService) SaveEstimation(ctx context.Context, quoteID uuid.UUID, input estimation.Input) (*entity.Quote, error) {
	quote, err := s.editableQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	norms, err := s.normTable(ctx)
	if err != nil {
		return nil, err
	}

	result, err := estimation.Estimate(input, norms)
	if err != nil {
		return nil, err
	}

	quote.ScopeData = &input
	quote.Estimation = result
	if quote.Status == enum.QuoteStatusConcept {
		quote.Status = enum.QuoteStatusVoorcalculatie
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, apperror.NewPersistenceError("Failed to save estimation", err)
	}
	return quote, nil
}

// Send transitions the quote to verzonden and issues the customer share
// token. Sending without an estimation is a hard gate, not a UI hint.
func (s *QuoteService) Send(ctx context.Context, quoteID uuid.UUID) (*entity.Quote, error) {
	quote, err := s.requireQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if quote.Estimation == nil {
		return nil, apperror.NewPreconditionError("Quote cannot be sent without a voorcalculatie")
	}
	if !quote.Status.CanTransition(enum.QuoteStatusVerzonden) {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Quote in status %s cannot be sent", quote.Status))
	}

	token, err := s.shareTokens.Generate(quote.ID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to issue share token", err)
	}

	now := time.Now()
	quote.Status = enum.QuoteStatusVerzonden
	quote.ShareToken = &token
	quote.SentAt = &now

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, apperror.NewPersistenceError("Failed to send quote", err)
	}
	return quote, nil
}

// RespondInput is the customer's answer on the share link
type RespondInput struct {
	Accepted bool
	Name     string
	Note     string
}

// Respond records the customer response on a sent quote. Acceptance spawns
// the project in the same transaction; the quote itself only changes status.
func (s *QuoteService) Respond(ctx context.Context, quoteID uuid.UUID, input *RespondInput) (*entity.Quote, error) {
	quote, err := s.requireQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	target := enum.QuoteStatusAfgewezen
	if input.Accepted {
		target = enum.QuoteStatusGeaccepteerd
	}
	if !quote.Status.CanTransition(target) {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Quote in status %s cannot receive a customer response", quote.Status))
	}

	now := time.Now()
	quote.Status = target
	quote.RespondedAt = &now
	quote.CustomerResponse = &entity.CustomerResponse{
		Accepted: input.Accepted,
		Name:     input.Name,
		Note:     input.Note,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.quoteRepo.Update(ctx, quote); err != nil {
			return err
		}
		if !input.Accepted {
			return nil
		}
		number, err := s.sequenceRepo.Next(ctx, entity.SequenceKindProject, now.Year())
		if err != nil {
			return err
		}
		return s.projectRepo.Create(ctx, &entity.Project{
			Number:  number,
			QuoteID: quote.ID,
			Status:  enum.ProjectStatusPlanning,
		})
	})
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to record customer response", err)
	}
	return quote, nil
}

// Reopen takes a rejected quote back to concept for re-quoting. This is the
// only backward edge in the quote state machine.
func (s *QuoteService) Reopen(ctx context.Context, quoteID uuid.UUID) (*entity.Quote, error) {
	quote, err := s.requireQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if !quote.Status.CanTransition(enum.QuoteStatusConcept) {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Quote in status %s cannot be reopened", quote.Status))
	}

	quote.Status = enum.QuoteStatusConcept
	quote.CustomerResponse = nil
	quote.ShareToken = nil
	quote.SentAt = nil
	quote.RespondedAt = nil

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, apperror.NewPersistenceError("Failed to reopen quote", err)
	}
	return quote, nil
}

// GetByShareToken resolves a customer share token to its quote with totals.
// The token must match the one stored on the quote: reopen clears the stored
// token, and a previously issued link stops resolving even while its
// signature is still valid.
func (s *QuoteService) GetByShareToken(ctx context.Context, token string) (*QuoteWithTotals, error) {
	quoteID, err := s.shareTokens.Validate(token)
	if err != nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	quote, err := s.requireQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.ShareToken == nil || *quote.ShareToken != token {
		return nil, apperror.NewNotFoundError("Quote")
	}

	return s.GetQuote(ctx, quote.ID)
}

// Recalculate regenerates the full line-item set from the stored scope data
// via the estimation and pricing engines. This replaces every existing line,
// including manual edits: the handler requires an explicit confirmation
// before calling it.
func (s *QuoteService) Recalculate(ctx context.Context, quoteID uuid.UUID) (*QuoteWithTotals, error) {
	quote, err := s.editableQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.ScopeData == nil {
		return nil, apperror.NewPreconditionError("Quote has no scope data to recalculate from")
	}

	norms, err := s.normTable(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load settings", err)
	}

	result, err := estimation.Estimate(*quote.ScopeData, norms)
	if err != nil {
		return nil, err
	}

	lines := deriveLineItems(quote, result, settings)

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lineItemRepo.DeleteByQuoteID(ctx, quote.ID); err != nil {
			return err
		}
		if err := s.lineItemRepo.CreateBatch(ctx, lines); err != nil {
			return err
		}
		quote.Estimation = result
		return s.quoteRepo.Update(ctx, quote)
	})
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to recalculate quote", err)
	}

	return s.GetQuote(ctx, quote.ID)
}

// deriveLineItems builds the derived line set for a quote: one labor line
// per scope at the default hourly rate, plus a material line when the scope
// data records material cost. Deterministic for a given estimation result.
func deriveLineItems(quote *entity.Quote, result *estimation.Result, settings *entity.CompanySettings) []entity.QuoteLineItem {
	lines := make([]entity.QuoteLineItem, 0, len(result.NormHoursPerScope)*2)
	position := 0

	// ScopeData.Scopes preserves the user's selection order
	for _, scope := range quote.ScopeData.Scopes {
		hours, ok := result.NormHoursPerScope[scope]
		if !ok {
			continue
		}
		data := quote.ScopeData.ScopeData[scope]

		lines = append(lines, entity.QuoteLineItem{
			QuoteID:     quote.ID,
			Scope:       scope,
			Description: fmt.Sprintf("Arbeid %s", scope),
			Unit:        "uur",
			Quantity:    hours,
			UnitPrice:   settings.DefaultHourlyRate,
			LineTotal:   hours * settings.DefaultHourlyRate,
			Kind:        enum.LineKindLabor,
			Position:    position,
		})
		position++

		if data.MaterialCost > 0 {
			lines = append(lines, entity.QuoteLineItem{
				QuoteID:     quote.ID,
				Scope:       scope,
				Description: fmt.Sprintf("Materiaal %s", scope),
				Unit:        "post",
				Quantity:    1,
				UnitPrice:   data.MaterialCost,
				LineTotal:   data.MaterialCost,
				Kind:        enum.LineKindMaterial,
				Position:    position,
			})
			position++
		}
	}
	return lines
}

// requireQuote loads a quote or fails with NotFound
func (s *QuoteService) requireQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load quote", err)
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// editableQuote loads a quote and verifies its content may still change
func (s *QuoteService) editableQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.requireQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status != enum.QuoteStatusConcept && quote.Status != enum.QuoteStatusVoorcalculatie {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Quote in status %s can no longer be edited", quote.Status))
	}
	return quote, nil
}

// normTable loads the norm-hours table as the estimation engine expects it
func (s *QuoteService) normTable(ctx context.Context) (estimation.NormTable, error) {
	norms, err := s.normHourRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load norm hours", err)
	}
	table := make(estimation.NormTable, len(norms))
	for _, n := range norms {
		table[n.Scope] = n.HoursPerUnit
	}
	return table, nil
}

// computeTotals derives quote totals from the current settings
func (s *QuoteService) computeTotals(ctx context.Context, lines []entity.QuoteLineItem) (pricing.Totals, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return pricing.Totals{}, apperror.NewPersistenceError("Failed to load settings", err)
	}
	return pricing.ComputeTotals(lines, pricing.Settings{
		DefaultMarginPercent: settings.DefaultMarginPercent,
		VatPercent:           settings.VatPercent,
		PerScopeMargins:      settings.PerScopeMargins,
	}), nil
}
