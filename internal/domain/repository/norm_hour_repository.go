package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
)

// NormHourRepository defines the interface for the norm-hours table
type NormHourRepository interface {
	Create(ctx context.Context, norm *entity.NormHour) error
	GetByScope(ctx context.Context, scope enum.ScopeTag) (*entity.NormHour, error)
	Update(ctx context.Context, norm *entity.NormHour) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.NormHour, error)
}
