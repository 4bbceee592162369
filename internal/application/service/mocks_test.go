package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/domain/repository"
)

// In-memory fakes for the repository interfaces. They keep entities in maps
// and fail through injectable error hooks.

type mockQuoteRepo struct {
	quotes    map[uuid.UUID]*entity.Quote
	updateErr error
	archived  map[uuid.UUID]bool
}

func newMockQuoteRepo() *mockQuoteRepo {
	return &mockQuoteRepo{
		quotes:   make(map[uuid.UUID]*entity.Quote),
		archived: make(map[uuid.UUID]bool),
	}
}

func (m *mockQuoteRepo) add(q *entity.Quote) *entity.Quote {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	m.quotes[q.ID] = q
	return q
}

func (m *mockQuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	m.add(quote)
	return nil
}

func (m *mockQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	return m.quotes[id], nil
}

func (m *mockQuoteRepo) GetByNumber(ctx context.Context, number string) (*entity.Quote, error) {
	for _, q := range m.quotes {
		if q.Number == number {
			return q, nil
		}
	}
	return nil, nil
}

func (m *mockQuoteRepo) GetWithLineItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	return m.quotes[id], nil
}

func (m *mockQuoteRepo) Update(ctx context.Context, quote *entity.Quote) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.quotes[quote.ID] = quote
	return nil
}

func (m *mockQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	if q := m.quotes[id]; q != nil {
		q.Status = status
	}
	return nil
}

func (m *mockQuoteRepo) Archive(ctx context.Context, id uuid.UUID) error {
	m.archived[id] = true
	return nil
}

func (m *mockQuoteRepo) List(ctx context.Context, params *repository.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var out []entity.Quote
	for _, q := range m.quotes {
		if params.CustomerID != nil && q.CustomerID != *params.CustomerID {
			continue
		}
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

type mockLineItemRepo struct {
	items map[uuid.UUID]*entity.QuoteLineItem
}

func newMockLineItemRepo() *mockLineItemRepo {
	return &mockLineItemRepo{items: make(map[uuid.UUID]*entity.QuoteLineItem)}
}

func (m *mockLineItemRepo) Create(ctx context.Context, item *entity.QuoteLineItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockLineItemRepo) CreateBatch(ctx context.Context, items []entity.QuoteLineItem) error {
	for i := range items {
		item := items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		m.items[item.ID] = &item
	}
	return nil
}

func (m *mockLineItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.QuoteLineItem, error) {
	return m.items[id], nil
}

func (m *mockLineItemRepo) GetByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteLineItem, error) {
	var out []entity.QuoteLineItem
	for _, item := range m.items {
		if item.QuoteID == quoteID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockLineItemRepo) Update(ctx context.Context, item *entity.QuoteLineItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockLineItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockLineItemRepo) DeleteByQuoteID(ctx context.Context, quoteID uuid.UUID) error {
	for id, item := range m.items {
		if item.QuoteID == quoteID {
			delete(m.items, id)
		}
	}
	return nil
}

type mockCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (m *mockCustomerRepo) add() *entity.Customer {
	c := &entity.Customer{ID: uuid.New(), Name: "Fam. Jansen"}
	m.customers[c.ID] = c
	return c
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return m.customers[id], nil
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerRepo) List(ctx context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range m.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type mockProjectRepo struct {
	projects map[uuid.UUID]*entity.Project
	archived map[uuid.UUID]bool
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{
		projects: make(map[uuid.UUID]*entity.Project),
		archived: make(map[uuid.UUID]bool),
	}
}

func (m *mockProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	return m.projects[id], nil
}

func (m *mockProjectRepo) GetByQuoteID(ctx context.Context, quoteID uuid.UUID) (*entity.Project, error) {
	for _, p := range m.projects {
		if p.QuoteID == quoteID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProjectStatus) error {
	if p := m.projects[id]; p != nil {
		p.Status = status
	}
	return nil
}

func (m *mockProjectRepo) Archive(ctx context.Context, id uuid.UUID) error {
	m.archived[id] = true
	if p := m.projects[id]; p != nil {
		p.Archived = true
	}
	return nil
}

func (m *mockProjectRepo) List(ctx context.Context, params *repository.ProjectFilterParams) ([]entity.Project, int64, error) {
	var out []entity.Project
	for _, p := range m.projects {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

type mockInvoiceRepo struct {
	invoices  map[uuid.UUID]*entity.Invoice
	updateErr error
}

func newMockInvoiceRepo() *mockInvoiceRepo {
	return &mockInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return m.invoices[id], nil
}

func (m *mockInvoiceRepo) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*entity.Invoice, error) {
	for _, inv := range m.invoices {
		if inv.ProjectID == projectID {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *mockInvoiceRepo) GetWithLineItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return m.invoices[id], nil
}

func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *mockInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range m.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (m *mockInvoiceRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]entity.Invoice, error) {
	var out []entity.Invoice
	for _, inv := range m.invoices {
		if inv.IsOverdue(asOf) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

type mockInvoiceLineItemRepo struct {
	items map[uuid.UUID][]entity.InvoiceLineItem
}

func newMockInvoiceLineItemRepo() *mockInvoiceLineItemRepo {
	return &mockInvoiceLineItemRepo{items: make(map[uuid.UUID][]entity.InvoiceLineItem)}
}

func (m *mockInvoiceLineItemRepo) CreateBatch(ctx context.Context, items []entity.InvoiceLineItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		m.items[items[i].InvoiceID] = append(m.items[items[i].InvoiceID], items[i])
	}
	return nil
}

func (m *mockInvoiceLineItemRepo) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceLineItem, error) {
	return m.items[invoiceID], nil
}

type mockSettingsRepo struct {
	settings *entity.CompanySettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{
		settings: &entity.CompanySettings{
			ID:                   uuid.New(),
			DefaultMarginPercent: 15,
			VatPercent:           21,
			DefaultHourlyRate:    45,
			PaymentTermDays:      30,
		},
	}
}

func (m *mockSettingsRepo) Get(ctx context.Context) (*entity.CompanySettings, error) {
	return m.settings, nil
}

func (m *mockSettingsRepo) Update(ctx context.Context, settings *entity.CompanySettings) error {
	m.settings = settings
	return nil
}

type mockNormHourRepo struct {
	norms map[enum.ScopeTag]*entity.NormHour
}

func newMockNormHourRepo() *mockNormHourRepo {
	m := &mockNormHourRepo{norms: make(map[enum.ScopeTag]*entity.NormHour)}
	for scope, hours := range map[enum.ScopeTag]float64{
		enum.ScopeBestrating: 0.75,
		enum.ScopeGazon:      0.15,
		enum.ScopeSchutting:  1.2,
	} {
		m.norms[scope] = &entity.NormHour{ID: uuid.New(), Scope: scope, HoursPerUnit: hours, Unit: "m2"}
	}
	return m
}

func (m *mockNormHourRepo) Create(ctx context.Context, norm *entity.NormHour) error {
	if norm.ID == uuid.Nil {
		norm.ID = uuid.New()
	}
	m.norms[norm.Scope] = norm
	return nil
}

func (m *mockNormHourRepo) GetByScope(ctx context.Context, scope enum.ScopeTag) (*entity.NormHour, error) {
	return m.norms[scope], nil
}

func (m *mockNormHourRepo) Update(ctx context.Context, norm *entity.NormHour) error {
	m.norms[norm.Scope] = norm
	return nil
}

func (m *mockNormHourRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for scope, n := range m.norms {
		if n.ID == id {
			delete(m.norms, scope)
		}
	}
	return nil
}

func (m *mockNormHourRepo) List(ctx context.Context) ([]entity.NormHour, error) {
	var out []entity.NormHour
	for _, n := range m.norms {
		out = append(out, *n)
	}
	return out, nil
}

type mockSequenceRepo struct {
	counts map[string]int
}

func newMockSequenceRepo() *mockSequenceRepo {
	return &mockSequenceRepo{counts: make(map[string]int)}
}

func (m *mockSequenceRepo) Next(ctx context.Context, kind string, year int) (string, error) {
	m.counts[kind]++
	seq := entity.NumberSequence{Kind: kind, Year: year}
	return seq.Format(m.counts[kind]), nil
}

// mockTxManager runs the function directly; rollback is not simulated
type mockTxManager struct {
	calls int
}

func (m *mockTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

var errBoom = fmt.Errorf("boom")
