package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a factuur generated from a project
type Invoice struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Number    string             `gorm:"size:50;unique;not null" json:"number"`
	Status    enum.InvoiceStatus `gorm:"default:0" json:"status"`
	ProjectID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"project_id"`

	CustomerID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"customer_id"`
	CompanyInfo CompanyInfo `gorm:"serializer:json" json:"company_info"`

	// Totals are frozen at generation time; corrections adjust the ex-VAT
	// total before VAT is applied
	Corrections  []InvoiceCorrection `gorm:"serializer:json" json:"corrections,omitempty"`
	Subtotal     float64             `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	VatPercent   float64             `gorm:"type:decimal(5,2);default:0" json:"vat_percent"`
	VatAmount    float64             `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	TotalExVat   float64             `gorm:"type:decimal(15,2);default:0" json:"total_ex_vat"`
	TotalInclVat float64             `gorm:"type:decimal(15,2);default:0" json:"total_incl_vat"`

	InvoiceDate     time.Time      `gorm:"type:date;not null" json:"invoice_date"`
	DueDate         time.Time      `gorm:"type:date;not null" json:"due_date"`
	PaymentTermDays int            `gorm:"default:30" json:"payment_term_days"`
	SentAt          *time.Time     `json:"sent_at,omitempty"`
	PaidAt          *time.Time     `json:"paid_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Project   *Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Customer  *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	LineItems []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"line_items,omitempty"`
}

// InvoiceCorrection is a manual adjustment applied ex-VAT
type InvoiceCorrection struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// CompanyInfo is the issuing company's letterhead data, frozen per invoice
type CompanyInfo struct {
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	KvkNumber  string `json:"kvk_number,omitempty"`
	VatNumber  string `json:"vat_number,omitempty"`
	Iban       string `json:"iban,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// IsOverdue reports whether a sent invoice is past its due date
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == enum.InvoiceStatusVerzonden && now.After(i.DueDate)
}

// InvoiceLineItem is an independent snapshot of a quote line. It does not
// share identity with the quote's line: the quote stays immutable after
// generation.
type InvoiceLineItem struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Scope       enum.ScopeTag `gorm:"size:50" json:"scope,omitempty"`
	Description string        `gorm:"size:255;not null" json:"description"`
	Unit        string        `gorm:"size:20" json:"unit,omitempty"`
	Quantity    float64       `gorm:"type:decimal(12,3);default:0" json:"quantity"`
	UnitPrice   float64       `gorm:"type:decimal(15,2);default:0" json:"unit_price"`
	LineTotal   float64       `gorm:"type:decimal(15,2);default:0" json:"line_total"`
	Kind        enum.LineKind `gorm:"default:0" json:"kind"`
	Position    int           `gorm:"default:0" json:"position"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new invoice line
func (li *InvoiceLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLineItem model
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}
