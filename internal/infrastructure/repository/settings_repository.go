package repository

import (
	"context"
	"errors"

	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	domainRepo "github.com/groenwerk/hovenier-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row, creating it with defaults when the
// database is empty.
func (r *settingsRepository) Get(ctx context.Context) (*entity.CompanySettings, error) {
	var settings entity.CompanySettings
	err := dbFrom(ctx, r.db).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = entity.CompanySettings{
			DefaultMarginPercent: 15,
			VatPercent:           21,
			DefaultHourlyRate:    45,
			PaymentTermDays:      30,
		}
		if err := dbFrom(ctx, r.db).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.CompanySettings) error {
	return dbFrom(ctx, r.db).Save(settings).Error
}
