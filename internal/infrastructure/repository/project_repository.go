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

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) domainRepo.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return dbFrom(ctx, r.db).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	err := dbFrom(ctx, r.db).
		Preload("Quote").
		Preload("Quote.Customer").
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &project, err
}

func (r *projectRepository) GetByQuoteID(ctx context.Context, quoteID uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	err := dbFrom(ctx, r.db).First(&project, "quote_id = ?", quoteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &project, err
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	return dbFrom(ctx, r.db).Save(project).Error
}

func (r *projectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProjectStatus) error {
	return dbFrom(ctx, r.db).Model(&entity.Project{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *projectRepository) Archive(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Model(&entity.Project{}).
		Where("id = ?", id).
		Update("archived", true).Error
}

func (r *projectRepository) List(ctx context.Context, params *domainRepo.ProjectFilterParams) ([]entity.Project, int64, error) {
	var projects []entity.Project
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Project{})

	if !params.IncludeArchived {
		query = query.Where("archived = ?", false)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Quote").
		Order(sortBy + " " + sortOrder).
		Find(&projects).Error

	return projects, total, err
}
