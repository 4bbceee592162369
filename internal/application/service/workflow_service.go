package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/repository"
	"github.com/groenwerk/hovenier-api/internal/domain/workflow"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
)

// WorkflowService derives the seven-step overview for one quote-to-cash
// chain. The step states are never stored; they follow from the entities.
type WorkflowService struct {
	quoteRepo   repository.QuoteRepository
	projectRepo repository.ProjectRepository
	invoiceRepo repository.InvoiceRepository
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(
	quoteRepo repository.QuoteRepository,
	projectRepo repository.ProjectRepository,
	invoiceRepo repository.InvoiceRepository,
) *WorkflowService {
	return &WorkflowService{
		quoteRepo:   quoteRepo,
		projectRepo: projectRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Overview is the workflow state of one chain, anchored on its quote
type Overview struct {
	Steps   []workflow.StepState `json:"steps"`
	Quote   *entity.Quote        `json:"quote"`
	Project *entity.Project      `json:"project,omitempty"`
	Invoice *entity.Invoice      `json:"invoice,omitempty"`
}

// GetOverview derives the workflow overview for a quote
func (s *WorkflowService) GetOverview(ctx context.Context, quoteID uuid.UUID) (*Overview, error) {
	quote, err := s.quoteRepo.GetWithLineItems(ctx, quoteID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load quote", err)
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	project, err := s.projectRepo.GetByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load project", err)
	}

	var invoice *entity.Invoice
	if project != nil {
		invoice, err = s.invoiceRepo.GetByProjectID(ctx, project.ID)
		if err != nil {
			return nil, apperror.NewPersistenceError("Failed to load invoice", err)
		}
	}

	return &Overview{
		Steps:   workflow.Derive(quote, project, invoice),
		Quote:   quote,
		Project: project,
		Invoice: invoice,
	}, nil
}
