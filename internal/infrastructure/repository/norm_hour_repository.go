package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	domainRepo "github.com/groenwerk/hovenier-api/internal/domain/repository"
	"gorm.io/gorm"
)

type normHourRepository struct {
	db *gorm.DB
}

// NewNormHourRepository creates a new norm-hours repository
func NewNormHourRepository(db *gorm.DB) domainRepo.NormHourRepository {
	return &normHourRepository{db: db}
}

func (r *normHourRepository) Create(ctx context.Context, norm *entity.NormHour) error {
	return dbFrom(ctx, r.db).Create(norm).Error
}

func (r *normHourRepository) GetByScope(ctx context.Context, scope enum.ScopeTag) (*entity.NormHour, error) {
	var norm entity.NormHour
	err := dbFrom(ctx, r.db).First(&norm, "scope = ?", scope).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &norm, err
}

func (r *normHourRepository) Update(ctx context.Context, norm *entity.NormHour) error {
	return dbFrom(ctx, r.db).Save(norm).Error
}

func (r *normHourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.NormHour{}, "id = ?", id).Error
}

func (r *normHourRepository) List(ctx context.Context) ([]entity.NormHour, error) {
	var norms []entity.NormHour
	err := dbFrom(ctx, r.db).Order("scope ASC").Find(&norms).Error
	return norms, err
}
