package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/domain/estimation"
	"github.com/groenwerk/hovenier-api/internal/domain/repository"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
)

// NormHourService manages the norm-hours table the estimation engine
// prices against
type NormHourService struct {
	normHourRepo repository.NormHourRepository
}

// NewNormHourService creates a new norm-hour service
func NewNormHourService(normHourRepo repository.NormHourRepository) *NormHourService {
	return &NormHourService{normHourRepo: normHourRepo}
}

// ListNormHours returns all norm-hour rows
func (s *NormHourService) ListNormHours(ctx context.Context) ([]entity.NormHour, error) {
	norms, err := s.normHourRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list norm hours", err)
	}
	return norms, nil
}

// Table returns the norm hours in the shape the estimation engine expects
func (s *NormHourService) Table(ctx context.Context) (estimation.NormTable, error) {
	norms, err := s.ListNormHours(ctx)
	if err != nil {
		return nil, err
	}
	table := make(estimation.NormTable, len(norms))
	for _, n := range norms {
		table[n.Scope] = n.HoursPerUnit
	}
	return table, nil
}

// NormHourInput represents the input for creating or updating a norm-hour row
type NormHourInput struct {
	Scope        enum.ScopeTag
	HoursPerUnit float64
	Unit         string
	Description  *string
}

func (in *NormHourInput) validate() error {
	var fieldErrors []apperror.FieldError
	if in.Scope == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "scope", Message: "is required"})
	}
	if in.HoursPerUnit <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "hours_per_unit", Message: "must be positive"})
	}
	if in.Unit == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit", Message: "is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError("Invalid norm hours", fieldErrors...)
	}
	return nil
}

// UpsertNormHour creates or replaces the norm-hour row of a scope. Changes
// affect future estimations only; stored estimation results stay as saved.
func (s *NormHourService) UpsertNormHour(ctx context.Context, input *NormHourInput) (*entity.NormHour, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.normHourRepo.GetByScope(ctx, input.Scope)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load norm hours", err)
	}

	if existing == nil {
		norm := &entity.NormHour{
			Scope:        input.Scope,
			HoursPerUnit: input.HoursPerUnit,
			Unit:         input.Unit,
			Description:  input.Description,
		}
		if err := s.normHourRepo.Create(ctx, norm); err != nil {
			return nil, apperror.NewPersistenceError("Failed to create norm hours", err)
		}
		return norm, nil
	}

	existing.HoursPerUnit = input.HoursPerUnit
	existing.Unit = input.Unit
	existing.Description = input.Description
	if err := s.normHourRepo.Update(ctx, existing); err != nil {
		return nil, apperror.NewPersistenceError("Failed to update norm hours", err)
	}
	return existing, nil
}

// DeleteNormHour removes a norm-hour row. Scopes without a row simply stop
// being estimable until a new row is added.
func (s *NormHourService) DeleteNormHour(ctx context.Context, id uuid.UUID) error {
	if err := s.normHourRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("Failed to delete norm hours", err)
	}
	return nil
}
