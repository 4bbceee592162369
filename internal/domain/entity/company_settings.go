package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CompanySettings is the single-row settings record backing the pricing and
// invoicing defaults: margin, VAT, hourly rate, payment terms and letterhead.
type CompanySettings struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	DefaultMarginPercent float64 `gorm:"type:decimal(5,2);default:15" json:"default_margin_percent"`
	VatPercent           float64 `gorm:"type:decimal(5,2);default:21" json:"vat_percent"`
	DefaultHourlyRate    float64 `gorm:"type:decimal(10,2);default:45" json:"default_hourly_rate"`
	PaymentTermDays      int     `gorm:"default:30" json:"payment_term_days"`

	// Optional per-scope margin table; overrides the default margin for
	// lines of that scope unless the line carries its own override
	PerScopeMargins map[enum.ScopeTag]float64 `gorm:"serializer:json" json:"per_scope_margins,omitempty"`

	CompanyInfo CompanyInfo `gorm:"serializer:json" json:"company_info"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *CompanySettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompanySettings model
func (CompanySettings) TableName() string {
	return "company_settings"
}
