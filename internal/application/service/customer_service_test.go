package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
)

func TestCreateCustomerRequiresName(t *testing.T) {
	svc := NewCustomerService(newMockCustomerRepo(), newMockQuoteRepo())

	_, err := svc.CreateCustomer(context.Background(), &CustomerInput{Name: ""})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestCreateAndUpdateCustomer(t *testing.T) {
	repo := newMockCustomerRepo()
	svc := NewCustomerService(repo, newMockQuoteRepo())

	email := "jansen@example.nl"
	created, err := svc.CreateCustomer(context.Background(), &CustomerInput{
		Name:  "Fam. Jansen",
		Email: &email,
	})
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("customer must get an id on create")
	}

	updated, err := svc.UpdateCustomer(context.Background(), created.ID, &CustomerInput{Name: "Fam. Jansen-de Vries"})
	if err != nil {
		t.Fatalf("UpdateCustomer() error = %v", err)
	}
	if updated.Name != "Fam. Jansen-de Vries" {
		t.Errorf("Name = %s, want updated name", updated.Name)
	}
}

// A customer referenced by any quote cannot be deleted; the quote chain must
// stay resolvable.
func TestDeleteCustomerWithQuotes(t *testing.T) {
	customerRepo := newMockCustomerRepo()
	quoteRepo := newMockQuoteRepo()
	svc := NewCustomerService(customerRepo, quoteRepo)

	customer := customerRepo.add()
	quoteRepo.add(&entity.Quote{
		CustomerID: customer.ID,
		Status:     enum.QuoteStatusConcept,
	})

	err := svc.DeleteCustomer(context.Background(), customer.ID)
	if !apperror.IsKind(err, apperror.KindPrecondition) {
		t.Fatalf("error = %v, want precondition", err)
	}

	got, _ := customerRepo.GetByID(context.Background(), customer.ID)
	if got == nil {
		t.Error("customer must not be deleted while quotes reference it")
	}
}

func TestDeleteCustomerWithoutQuotes(t *testing.T) {
	customerRepo := newMockCustomerRepo()
	svc := NewCustomerService(customerRepo, newMockQuoteRepo())
	customer := customerRepo.add()

	if err := svc.DeleteCustomer(context.Background(), customer.ID); err != nil {
		t.Fatalf("DeleteCustomer() error = %v", err)
	}
	got, _ := customerRepo.GetByID(context.Background(), customer.ID)
	if got != nil {
		t.Error("customer must be gone after delete")
	}
}
