package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Project is the bridge between an accepted quote and its invoice. It carries
// a back-reference to the originating quote and never copies its content.
type Project struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Number    string             `gorm:"size:50;unique;not null" json:"number"`
	QuoteID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"quote_id"`
	Status    enum.ProjectStatus `gorm:"default:0" json:"status"`
	Archived  bool               `gorm:"default:false;index" json:"archived"`
	StartDate *time.Time         `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time         `gorm:"type:date" json:"end_date,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Quote *Quote `gorm:"foreignKey:QuoteID" json:"quote,omitempty"`
}

// BeforeCreate generates a UUID before creating a new project
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
