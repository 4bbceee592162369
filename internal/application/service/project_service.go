package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/domain/repository"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
	"github.com/groenwerk/hovenier-api/pkg/pagination"
)

// ProjectService handles project lifecycle operations. Projects are created
// by quote acceptance, never directly; this service only moves them forward.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// GetProject retrieves a project with its quote
func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load project", err)
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}
	return project, nil
}

// ListProjectsInput represents the input for listing projects
type ListProjectsInput struct {
	Pagination      *pagination.PaginationParams
	Status          *enum.ProjectStatus
	IncludeArchived bool
	SortBy          string
	SortOrder       string
}

// ListProjects lists projects with filtering
func (s *ProjectService) ListProjects(ctx context.Context, input *ListProjectsInput) (*pagination.PaginatedResult[entity.Project], error) {
	params := &repository.ProjectFilterParams{
		Pagination:      input.Pagination,
		Status:          input.Status,
		IncludeArchived: input.IncludeArchived,
		SortBy:          input.SortBy,
		SortOrder:       input.SortOrder,
	}

	projects, total, err := s.projectRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list projects", err)
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(projects, pag), nil
}

// UpdateStatus advances a project along planning, uitvoering, nacalculatie
// and afgerond. Illegal jumps are rejected.
func (s *ProjectService) UpdateStatus(ctx context.Context, id uuid.UUID, target enum.ProjectStatus) (*entity.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.Archived {
		return nil, apperror.NewPreconditionError("Archived projects cannot change status")
	}
	if !project.Status.CanTransition(target) {
		return nil, apperror.NewPreconditionError(
			fmt.Sprintf("Project cannot move from %s to %s", project.Status, target))
	}

	if err := s.projectRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, apperror.NewPersistenceError("Failed to update project status", err)
	}
	project.Status = target
	return project, nil
}

// UpdateProjectInput represents the editable planning fields of a project
type UpdateProjectInput struct {
	ID        uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// UpdateProject updates the planning window of a project
func (s *ProjectService) UpdateProject(ctx context.Context, input *UpdateProjectInput) (*entity.Project, error) {
	project, err := s.GetProject(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if project.Archived {
		return nil, apperror.NewPreconditionError("Archived projects cannot be edited")
	}

	project.StartDate = input.StartDate
	project.EndDate = input.EndDate

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, apperror.NewPersistenceError("Failed to update project", err)
	}
	return project, nil
}
