package repository

import (
	"context"

	"github.com/groenwerk/hovenier-api/internal/domain/entity"
)

// SettingsRepository supplies the single company settings row
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.CompanySettings, error)
	Update(ctx context.Context, settings *entity.CompanySettings) error
}
