package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/domain/pricing"
	"github.com/groenwerk/hovenier-api/internal/domain/repository"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
	"github.com/groenwerk/hovenier-api/pkg/pagination"
)

// InvoiceService handles factuur generation and its payment lifecycle
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	lineItemRepo repository.InvoiceLineItemRepository
	projectRepo  repository.ProjectRepository
	quoteRepo    repository.QuoteRepository
	settingsRepo repository.SettingsRepository
	sequenceRepo repository.NumberSequenceRepository
	txManager    repository.TransactionManager
	now          func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	lineItemRepo repository.InvoiceLineItemRepository,
	projectRepo repository.ProjectRepository,
	quoteRepo repository.QuoteRepository,
	settingsRepo repository.SettingsRepository,
	sequenceRepo repository.NumberSequenceRepository,
	txManager repository.TransactionManager,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		lineItemRepo: lineItemRepo,
		projectRepo:  projectRepo,
		quoteRepo:    quoteRepo,
		settingsRepo: settingsRepo,
		sequenceRepo: sequenceRepo,
		txManager:    txManager,
		now:          time.Now,
	}
}

// Generate creates the invoice for a project from the accepted quote's line
// items. The lines are copied as independent snapshots and the quote margin
// is carried as a correction entry, so the invoice total matches the quote's
// total including VAT. A project gets exactly one invoice.
func (s *InvoiceService) Generate(ctx context.Context, projectID uuid.UUID) (*entity.Invoice, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load project", err)
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}
	if project.Archived {
		return nil, apperror.NewPreconditionError("Archived projects cannot be invoiced")
	}

	existing, err := s.invoiceRepo.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to check existing invoice", err)
	}
	if existing != nil {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Project already has invoice %s", existing.Number))
	}

	quote, err := s.quoteRepo.GetWithLineItems(ctx, project.QuoteID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load quote", err)
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Status != enum.QuoteStatusGeaccepteerd {
		return nil, apperror.NewPreconditionError("Only accepted quotes can be invoiced")
	}
	if len(quote.LineItems) == 0 {
		return nil, apperror.NewPreconditionError("Quote has no line items to invoice")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load settings", err)
	}

	totals := pricing.ComputeTotals(quote.LineItems, pricing.Settings{
		DefaultMarginPercent: settings.DefaultMarginPercent,
		VatPercent:           settings.VatPercent,
		PerScopeMargins:      settings.PerScopeMargins,
	})

	lines := make([]entity.InvoiceLineItem, 0, len(quote.LineItems))
	for _, li := range quote.LineItems {
		lines = append(lines, entity.InvoiceLineItem{
			Scope:       li.Scope,
			Description: li.Description,
			Unit:        li.Unit,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			LineTotal:   li.LineTotal,
			Kind:        li.Kind,
			Position:    li.Position,
		})
	}

	var corrections []entity.InvoiceCorrection
	if totals.MarginAmount != 0 {
		corrections = append(corrections, entity.InvoiceCorrection{
			Description: "Marge",
			Amount:      totals.MarginAmount,
		})
	}

	subtotal, totalExVat, vatAmount, totalInclVat := pricing.ComputeInvoiceTotals(lines, corrections, settings.VatPercent)

	today := s.now()
	invoice := &entity.Invoice{
		Status:          enum.InvoiceStatusConcept,
		ProjectID:       project.ID,
		CustomerID:      quote.CustomerID,
		CompanyInfo:     settings.CompanyInfo,
		Corrections:     corrections,
		Subtotal:        subtotal,
		VatPercent:      settings.VatPercent,
		VatAmount:       vatAmount,
		TotalExVat:      totalExVat,
		TotalInclVat:    totalInclVat,
		InvoiceDate:     today,
		DueDate:         today.AddDate(0, 0, settings.PaymentTermDays),
		PaymentTermDays: settings.PaymentTermDays,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		number, err := s.sequenceRepo.Next(ctx, entity.SequenceKindInvoice, today.Year())
		if err != nil {
			return err
		}
		invoice.Number = number
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}
		for i := range lines {
			lines[i].InvoiceID = invoice.ID
		}
		return s.lineItemRepo.CreateBatch(ctx, lines)
	})
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to generate invoice", err)
	}

	return s.invoiceRepo.GetWithLineItems(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its line items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithLineItems(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load invoice", err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoicesInput represents the input for listing invoices
type ListInvoicesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.PaginatedResult[entity.Invoice], error) {
	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		CustomerID: input.CustomerID,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list invoices", err)
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// AddCorrection adds a manual ex-VAT adjustment to a concept invoice and
// recomputes the totals
func (s *InvoiceService) AddCorrection(ctx context.Context, id uuid.UUID, description string, amount float64) (*entity.Invoice, error) {
	if description == "" {
		return nil, apperror.NewValidationError("Correction description is required")
	}

	invoice, err := s.requireInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.IsEditable() {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Invoice in status %s can no longer be adjusted", invoice.Status))
	}

	lines, err := s.lineItemRepo.GetByInvoiceID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load invoice lines", err)
	}

	invoice.Corrections = append(invoice.Corrections, entity.InvoiceCorrection{
		Description: description,
		Amount:      amount,
	})
	invoice.Subtotal, invoice.TotalExVat, invoice.VatAmount, invoice.TotalInclVat =
		pricing.ComputeInvoiceTotals(lines, invoice.Corrections, invoice.VatPercent)

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, apperror.NewPersistenceError("Failed to update invoice", err)
	}
	return invoice, nil
}

// Finalize freezes a concept invoice
func (s *InvoiceService) Finalize(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return s.transition(ctx, id, enum.InvoiceStatusDefinitief, nil)
}

// MarkSent records that a finalized invoice went out to the customer
func (s *InvoiceService) MarkSent(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return s.transition(ctx, id, enum.InvoiceStatusVerzonden, func(inv *entity.Invoice) {
		now := s.now()
		inv.SentAt = &now
	})
}

// MarkPaid records payment and closes out the whole chain: the invoice goes
// to betaald, the project to afgerond and archived, and the quote archived.
// All three updates commit together or not at all.
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.requireInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanTransition(enum.InvoiceStatusBetaald) {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Invoice in status %s cannot be marked paid", invoice.Status))
	}

	now := s.now()
	invoice.Status = enum.InvoiceStatusBetaald
	invoice.PaidAt = &now

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}

		project, err := s.projectRepo.GetByID(ctx, invoice.ProjectID)
		if err != nil {
			return err
		}
		if project != nil {
			if err := s.projectRepo.UpdateStatus(ctx, project.ID, enum.ProjectStatusAfgerond); err != nil {
				return err
			}
			if err := s.projectRepo.Archive(ctx, project.ID); err != nil {
				return err
			}
			if err := s.quoteRepo.Archive(ctx, project.QuoteID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to mark invoice paid", err)
	}
	return invoice, nil
}

// SweepOverdue moves every sent invoice past its due date to vervallen and
// returns how many were flipped. Vervallen invoices can still be paid.
func (s *InvoiceService) SweepOverdue(ctx context.Context) (int, error) {
	now := s.now()
	overdue, err := s.invoiceRepo.ListOverdue(ctx, now)
	if err != nil {
		return 0, apperror.NewPersistenceError("Failed to list overdue invoices", err)
	}

	flipped := 0
	for i := range overdue {
		inv := &overdue[i]
		if !inv.Status.CanTransition(enum.InvoiceStatusVervallen) {
			continue
		}
		inv.Status = enum.InvoiceStatusVervallen
		if err := s.invoiceRepo.Update(ctx, inv); err != nil {
			return flipped, apperror.NewPersistenceError("Failed to expire invoice", err)
		}
		flipped++
	}
	return flipped, nil
}

// transition applies a single status change with an optional mutation
func (s *InvoiceService) transition(ctx context.Context, id uuid.UUID, target enum.InvoiceStatus, mutate func(*entity.Invoice)) (*entity.Invoice, error) {
	invoice, err := s.requireInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanTransition(target) {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Invoice cannot move from %s to %s", invoice.Status, target))
	}

	invoice.Status = target
	if mutate != nil {
		mutate(invoice)
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, apperror.NewPersistenceError("Failed to update invoice", err)
	}
	return invoice, nil
}

// requireInvoice loads an invoice or fails with NotFound
func (s *InvoiceService) requireInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load invoice", err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}
