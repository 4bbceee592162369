package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/pkg/pagination"
)

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	GetByQuoteID(ctx context.Context, quoteID uuid.UUID) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProjectStatus) error
	Archive(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProjectFilterParams) ([]entity.Project, int64, error)
}

// ProjectFilterParams contains filtering parameters for project queries
type ProjectFilterParams struct {
	Pagination      *pagination.PaginationParams
	Status          *enum.ProjectStatus
	IncludeArchived bool
	SortBy          string
	SortOrder       string
}
