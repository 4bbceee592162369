package service

import (
	"context"

	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/domain/repository"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
)

// SettingsService manages the single company settings row
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the company settings, creating defaults when missing
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.CompanySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load settings", err)
	}
	return settings, nil
}

// UpdateSettingsInput represents the editable settings fields
type UpdateSettingsInput struct {
	DefaultMarginPercent *float64
	VatPercent           *float64
	DefaultHourlyRate    *float64
	PaymentTermDays      *int
	PerScopeMargins      map[enum.ScopeTag]float64
	CompanyInfo          *entity.CompanyInfo
}

// UpdateSettings validates and applies a partial settings update. Changed
// percentages affect derived quote totals immediately; frozen invoices keep
// the values they were generated with.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.CompanySettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	var fieldErrors []apperror.FieldError
	if input.DefaultMarginPercent != nil {
		if *input.DefaultMarginPercent < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "default_margin_percent", Message: "must not be negative"})
		} else {
			settings.DefaultMarginPercent = *input.DefaultMarginPercent
		}
	}
	if input.VatPercent != nil {
		if *input.VatPercent < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "vat_percent", Message: "must not be negative"})
		} else {
			settings.VatPercent = *input.VatPercent
		}
	}
	if input.DefaultHourlyRate != nil {
		if *input.DefaultHourlyRate <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "default_hourly_rate", Message: "must be positive"})
		} else {
			settings.DefaultHourlyRate = *input.DefaultHourlyRate
		}
	}
	if input.PaymentTermDays != nil {
		if *input.PaymentTermDays < 1 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_term_days", Message: "must be at least 1"})
		} else {
			settings.PaymentTermDays = *input.PaymentTermDays
		}
	}
	if input.PerScopeMargins != nil {
		for scope, margin := range input.PerScopeMargins {
			if margin < 0 {
				fieldErrors = append(fieldErrors, apperror.FieldError{Field: "per_scope_margins", Message: "margin for " + string(scope) + " must not be negative"})
			}
		}
		settings.PerScopeMargins = input.PerScopeMargins
	}
	if input.CompanyInfo != nil {
		settings.CompanyInfo = *input.CompanyInfo
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError("Invalid settings", fieldErrors...)
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, apperror.NewPersistenceError("Failed to update settings", err)
	}
	return settings, nil
}
