package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/pkg/pagination"
)

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetByNumber(ctx context.Context, number string) (*entity.Quote, error)
	GetWithLineItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error
	Archive(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	Type       *enum.QuoteType
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// QuoteLineItemRepository defines the interface for line item data operations
type QuoteLineItemRepository interface {
	Create(ctx context.Context, item *entity.QuoteLineItem) error
	CreateBatch(ctx context.Context, items []entity.QuoteLineItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.QuoteLineItem, error)
	GetByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteLineItem, error)
	Update(ctx context.Context, item *entity.QuoteLineItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByQuoteID(ctx context.Context, quoteID uuid.UUID) error
}
