package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	domainRepo "github.com/groenwerk/hovenier-api/internal/domain/repository"
	"gorm.io/gorm"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	return dbFrom(ctx, r.db).Create(quote).Error
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := dbFrom(ctx, r.db).
		Preload("Customer").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetByNumber(ctx context.Context, number string) (*entity.Quote, error) {
	var quote entity.Quote
	err := dbFrom(ctx, r.db).First(&quote, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetWithLineItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := dbFrom(ctx, r.db).
		Preload("Customer").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	return dbFrom(ctx, r.db).Save(quote).Error
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	return dbFrom(ctx, r.db).Model(&entity.Quote{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *quoteRepository) Archive(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.Quote{}, "id = ?", id).Error
}

func (r *quoteRepository) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Quote{})

	if params.Search != "" {
		query = query.Joins("LEFT JOIN customers ON customers.id = quotes.customer_id").
			Where("quotes.number ILIKE ? OR customers.name ILIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("quotes.status = ?", *params.Status)
	}

	if params.Type != nil {
		query = query.Where("quotes.type = ?", *params.Type)
	}

	if params.CustomerID != nil {
		query = query.Where("quotes.customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("quotes." + sortBy + " " + sortOrder).
		Find(&quotes).Error

	return quotes, total, err
}

type quoteLineItemRepository struct {
	db *gorm.DB
}

// NewQuoteLineItemRepository creates a new line item repository
func NewQuoteLineItemRepository(db *gorm.DB) domainRepo.QuoteLineItemRepository {
	return &quoteLineItemRepository{db: db}
}

func (r *quoteLineItemRepository) Create(ctx context.Context, item *entity.QuoteLineItem) error {
	return dbFrom(ctx, r.db).Create(item).Error
}

func (r *quoteLineItemRepository) CreateBatch(ctx context.Context, items []entity.QuoteLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *quoteLineItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.QuoteLineItem, error) {
	var item entity.QuoteLineItem
	err := dbFrom(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *quoteLineItemRepository) GetByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteLineItem, error) {
	var items []entity.QuoteLineItem
	err := dbFrom(ctx, r.db).
		Where("quote_id = ?", quoteID).
		Order("position ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *quoteLineItemRepository) Update(ctx context.Context, item *entity.QuoteLineItem) error {
	return dbFrom(ctx, r.db).Save(item).Error
}

func (r *quoteLineItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.QuoteLineItem{}, "id = ?", id).Error
}

func (r *quoteLineItemRepository) DeleteByQuoteID(ctx context.Context, quoteID uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.QuoteLineItem{}, "quote_id = ?", quoteID).Error
}
