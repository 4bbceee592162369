package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/domain/estimation"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
	"gorm.io/gorm"
)

// Quote represents an offerte for a customer
type Quote struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Number     string         `gorm:"size:50;unique;not null" json:"number"`
	Type       enum.QuoteType `gorm:"default:0" json:"type"`
	CustomerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Status     enum.QuoteStatus `gorm:"default:0" json:"status"`

	Scopes    []enum.ScopeTag   `gorm:"serializer:json" json:"scopes"`
	ScopeData *estimation.Input `gorm:"serializer:json" json:"scope_data,omitempty"`

	// Voorcalculatie outcome; nil until the estimation has run
	Estimation *estimation.Result `gorm:"serializer:json" json:"estimation,omitempty"`

	Notes            *string           `gorm:"type:text" json:"notes,omitempty"`
	CustomerResponse *CustomerResponse `gorm:"serializer:json" json:"customer_response,omitempty"`
	ShareToken       *string           `gorm:"size:512" json:"-"`

	SentAt      *time.Time     `json:"sent_at,omitempty"`
	RespondedAt *time.Time     `json:"responded_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer  *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	LineItems []QuoteLineItem `gorm:"foreignKey:QuoteID" json:"line_items,omitempty"`
}

// CustomerResponse records what the customer answered on the share link
type CustomerResponse struct {
	Accepted bool   `json:"accepted"`
	Name     string `json:"name,omitempty"`
	Note     string `json:"note,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// QuoteLineItem represents a priced line (regel) on a quote
type QuoteLineItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"quote_id"`
	Scope       enum.ScopeTag  `gorm:"size:50;index" json:"scope,omitempty"`
	Description string         `gorm:"size:255;not null" json:"description"`
	Unit        string         `gorm:"size:20" json:"unit,omitempty"`
	Quantity    float64        `gorm:"type:decimal(12,3);default:0" json:"quantity"`
	UnitPrice   float64        `gorm:"type:decimal(15,2);default:0" json:"unit_price"`
	LineTotal   float64        `gorm:"type:decimal(15,2);default:0" json:"line_total"`
	Kind        enum.LineKind  `gorm:"default:0" json:"kind"`

	// Per-line margin override; takes precedence over the per-scope table
	// and the global default when set
	MarginPercentOverride *float64 `gorm:"type:decimal(5,2)" json:"margin_percent_override,omitempty"`

	Position  int            `gorm:"default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new line item
func (li *QuoteLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteLineItem model
func (QuoteLineItem) TableName() string {
	return "quote_line_items"
}

// Normalize validates the line and recomputes the line total. The total is
// never trusted from caller input: it is always quantity * unit price.
func (li *QuoteLineItem) Normalize() error {
	var fields []apperror.FieldError
	if strings.TrimSpace(li.Description) == "" {
		fields = append(fields, apperror.FieldError{Field: "description", Message: "is required"})
	}
	if li.Quantity < 0 {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "cannot be negative"})
	}
	if li.UnitPrice < 0 {
		fields = append(fields, apperror.FieldError{Field: "unit_price", Message: "cannot be negative"})
	}
	if !li.Kind.IsValid() {
		fields = append(fields, apperror.FieldError{Field: "kind", Message: "must be material, labor or machine"})
	}
	if li.MarginPercentOverride != nil && *li.MarginPercentOverride < 0 {
		fields = append(fields, apperror.FieldError{Field: "margin_percent_override", Message: "cannot be negative"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError("Invalid line item", fields...)
	}
	li.LineTotal = li.Quantity * li.UnitPrice
	return nil
}
