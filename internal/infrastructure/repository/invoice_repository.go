package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	domainRepo "github.com/groenwerk/hovenier-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return dbFrom(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).
		Preload("Customer").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).First(&invoice, "project_id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithLineItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).
		Preload("Customer").
		Preload("Project").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return dbFrom(ctx, r.db).Save(invoice).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Invoice{})

	if params.Search != "" {
		query = query.Joins("LEFT JOIN customers ON customers.id = invoices.customer_id").
			Where("invoices.number ILIKE ? OR customers.name ILIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("invoices.status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("invoices.customer_id = ?", *params.CustomerID)
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
		Order("invoices." + sortBy + " " + sortOrder).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := dbFrom(ctx, r.db).
		Where("status = ? AND due_date < ?", enum.InvoiceStatusVerzonden, asOf).
		Find(&invoices).Error
	return invoices, err
}

type invoiceLineItemRepository struct {
	db *gorm.DB
}

// NewInvoiceLineItemRepository creates a new invoice line item repository
func NewInvoiceLineItemRepository(db *gorm.DB) domainRepo.InvoiceLineItemRepository {
	return &invoiceLineItemRepository{db: db}
}

func (r *invoiceLineItemRepository) CreateBatch(ctx context.Context, items []entity.InvoiceLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *invoiceLineItemRepository) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceLineItem, error) {
	var items []entity.InvoiceLineItem
	err := dbFrom(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("position ASC, created_at ASC").
		Find(&items).Error
	return items, err
}
