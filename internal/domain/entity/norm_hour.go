package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"gorm.io/gorm"
)

// NormHour is one row of the norm-hours table: the base labor hours one unit
// of a scope costs under normal site conditions.
type NormHour struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Scope        enum.ScopeTag  `gorm:"size:50;uniqueIndex;not null" json:"scope"`
	HoursPerUnit float64        `gorm:"type:decimal(8,3);not null" json:"hours_per_unit"`
	Unit         string         `gorm:"size:20;not null" json:"unit"`
	Description  *string        `gorm:"size:255" json:"description,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new norm-hour row
func (n *NormHour) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the NormHour model
func (NormHour) TableName() string {
	return "norm_hours"
}
