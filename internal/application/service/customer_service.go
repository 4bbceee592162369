package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/repository"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
	"github.com/groenwerk/hovenier-api/pkg/pagination"
)

// CustomerService handles customer registry operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	quoteRepo    repository.QuoteRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, quoteRepo repository.QuoteRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		quoteRepo:    quoteRepo,
	}
}

// CustomerInput represents the input for creating or updating a customer
type CustomerInput struct {
	Name       string
	Email      *string
	Phone      *string
	Address    *string
	PostalCode *string
	City       *string
	Notes      *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Invalid customer",
			apperror.FieldError{Field: "name", Message: "is required"})
	}

	customer := &entity.Customer{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		PostalCode: input.PostalCode,
		City:       input.City,
		Notes:      input.Notes,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, apperror.NewPersistenceError("Failed to create customer", err)
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load customer", err)
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperror.NewValidationError("Invalid customer",
			apperror.FieldError{Field: "name", Message: "is required"})
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.PostalCode = input.PostalCode
	customer.City = input.City
	customer.Notes = input.Notes

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, apperror.NewPersistenceError("Failed to update customer", err)
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer. Customers referenced by a quote
// are kept so existing chains stay resolvable.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}

	quotes, _, err := s.quoteRepo.List(ctx, &repository.QuoteFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 1},
		CustomerID: &customer.ID,
	})
	if err != nil {
		return apperror.NewPersistenceError("Failed to check customer quotes", err)
	}
	if len(quotes) > 0 {
		return apperror.NewPreconditionError("Customer has quotes and cannot be deleted")
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("Failed to delete customer", err)
	}
	return nil
}

// ListCustomersInput represents the input for listing customers
type ListCustomersInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	SortBy     string
	SortOrder  string
}

// ListCustomers lists customers with filtering
func (s *CustomerService) ListCustomers(ctx context.Context, input *ListCustomersInput) (*pagination.PaginatedResult[entity.Customer], error) {
	params := &repository.CustomerFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}

	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to list customers", err)
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}
