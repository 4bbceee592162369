package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/internal/domain/estimation"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
	"github.com/groenwerk/hovenier-api/pkg/sharetoken"
)

type quoteServiceFixture struct {
	svc          *QuoteService
	quoteRepo    *mockQuoteRepo
	lineItemRepo *mockLineItemRepo
	customerRepo *mockCustomerRepo
	projectRepo  *mockProjectRepo
	customer     *entity.Customer
}

func newQuoteServiceFixture() *quoteServiceFixture {
	f := &quoteServiceFixture{
		quoteRepo:    newMockQuoteRepo(),
		lineItemRepo: newMockLineItemRepo(),
		customerRepo: newMockCustomerRepo(),
		projectRepo:  newMockProjectRepo(),
	}
	f.customer = f.customerRepo.add()
	f.svc = NewQuoteService(
		f.quoteRepo,
		f.lineItemRepo,
		f.customerRepo,
		f.projectRepo,
		newMockSettingsRepo(),
		newMockNormHourRepo(),
		newMockSequenceRepo(),
		&mockTxManager{},
		sharetoken.NewManager("test-secret", time.Hour),
	)
	return f
}

func (f *quoteServiceFixture) quote(status enum.QuoteStatus) *entity.Quote {
	return f.quoteRepo.add(&entity.Quote{
		Number:     "OFF-2026-0001",
		CustomerID: f.customer.ID,
		Status:     status,
		Scopes:     []enum.ScopeTag{enum.ScopeBestrating},
	})
}

func formattedNumber(kind string, value int) string {
	seq := entity.NumberSequence{Kind: kind, Year: time.Now().Year()}
	return seq.Format(value)
}

func validEstimationInput() estimation.Input {
	return estimation.Input{
		Scopes: []enum.ScopeTag{enum.ScopeBestrating},
		ScopeData: map[enum.ScopeTag]estimation.ScopeInput{
			enum.ScopeBestrating: {Quantity: 40, MaterialCost: 500},
		},
		Accessibility:        enum.AccessibilityGoed,
		Neglect:              enum.NeglectGeen,
		TeamSize:             2,
		EffectiveHoursPerDay: 7,
	}
}

func TestCreateQuote(t *testing.T) {
	f := newQuoteServiceFixture()

	quote, err := f.svc.CreateQuote(context.Background(), &CreateQuoteInput{
		Type:       enum.QuoteTypeAanleg,
		CustomerID: f.customer.ID,
		Scopes:     []enum.ScopeTag{enum.ScopeBestrating, enum.ScopeGazon},
	})
	if err != nil {
		t.Fatalf("CreateQuote() error = %v", err)
	}
	if quote.Status != enum.QuoteStatusConcept {
		t.Errorf("Status = %s, want concept", quote.Status)
	}
	want := formattedNumber(entity.SequenceKindQuote, 1)
	if quote.Number != want {
		t.Errorf("Number = %s, want %s", quote.Number, want)
	}
}

func TestCreateQuoteUnknownCustomer(t *testing.T) {
	f := newQuoteServiceFixture()

	_, err := f.svc.CreateQuote(context.Background(), &CreateQuoteInput{
		CustomerID: uuid.New(),
	})
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestAddLineItemComputesTotal(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusConcept)

	item, err := f.svc.AddLineItem(context.Background(), quote.ID, &LineItemInput{
		Scope:       enum.ScopeBestrating,
		Description: "Bestrating leggen",
		Unit:        "uur",
		Quantity:    8,
		UnitPrice:   45,
		Kind:        enum.LineKindLabor,
	})
	if err != nil {
		t.Fatalf("AddLineItem() error = %v", err)
	}
	if item.LineTotal != 360 {
		t.Errorf("LineTotal = %v, want 360", item.LineTotal)
	}
}

func TestAddLineItemRejectedAfterSend(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusVerzonden)

	_, err := f.svc.AddLineItem(context.Background(), quote.ID, &LineItemInput{
		Description: "Te laat",
		Kind:        enum.LineKindLabor,
	})
	if !apperror.IsKind(err, apperror.KindPrecondition) {
		t.Fatalf("error = %v, want precondition", err)
	}
}

func TestSaveEstimationTransitionsToVoorcalculatie(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusConcept)

	updated, err := f.svc.SaveEstimation(context.Background(), quote.ID, validEstimationInput())
	if err != nil {
		t.Fatalf("SaveEstimation() error = %v", err)
	}
	if updated.Status != enum.QuoteStatusVoorcalculatie {
		t.Errorf("Status = %s, want voorcalculatie", updated.Status)
	}
	if updated.Estimation == nil {
		t.Fatal("Estimation not stored")
	}
	// 40 * 0.75 = 30 hours, 30 / 14 -> 3 days
	if updated.Estimation.NormHoursTotal != 30 {
		t.Errorf("NormHoursTotal = %v, want 30", updated.Estimation.NormHoursTotal)
	}
	if updated.Estimation.EstimatedDays != 3 {
		t.Errorf("EstimatedDays = %v, want 3", updated.Estimation.EstimatedDays)
	}
}

// Sending without a voorcalculatie is refused and the quote is untouched.
func TestSendWithoutEstimation(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusVoorcalculatie)

	_, err := f.svc.Send(context.Background(), quote.ID)
	if !apperror.IsKind(err, apperror.KindPrecondition) {
		t.Fatalf("error = %v, want precondition", err)
	}

	stored, _ := f.quoteRepo.GetByID(context.Background(), quote.ID)
	if stored.Status != enum.QuoteStatusVoorcalculatie {
		t.Errorf("Status = %s, want voorcalculatie (unchanged)", stored.Status)
	}
	if stored.ShareToken != nil || stored.SentAt != nil {
		t.Error("failed send must not leave a share token or sent timestamp")
	}
}

func TestSendIssuesShareToken(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusConcept)

	if _, err := f.svc.SaveEstimation(context.Background(), quote.ID, validEstimationInput()); err != nil {
		t.Fatalf("SaveEstimation() error = %v", err)
	}

	sent, err := f.svc.Send(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if sent.Status != enum.QuoteStatusVerzonden {
		t.Errorf("Status = %s, want verzonden", sent.Status)
	}
	if sent.ShareToken == nil || sent.SentAt == nil {
		t.Fatal("Send must set share token and sent timestamp")
	}

	// the token resolves back to this quote
	got, err := f.svc.GetByShareToken(context.Background(), *sent.ShareToken)
	if err != nil {
		t.Fatalf("GetByShareToken() error = %v", err)
	}
	if got.ID != quote.ID {
		t.Errorf("token resolved to %s, want %s", got.ID, quote.ID)
	}
}

func TestSendFromConceptRejected(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusConcept)
	quote.Estimation = &estimation.Result{}

	_, err := f.svc.Send(context.Background(), quote.ID)
	if !apperror.IsKind(err, apperror.KindPrecondition) {
		t.Fatalf("error = %v, want precondition", err)
	}
}

func TestRespondAcceptCreatesProject(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusVerzonden)

	updated, err := f.svc.Respond(context.Background(), quote.ID, &RespondInput{
		Accepted: true,
		Name:     "J. Jansen",
	})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if updated.Status != enum.QuoteStatusGeaccepteerd {
		t.Errorf("Status = %s, want geaccepteerd", updated.Status)
	}
	if updated.CustomerResponse == nil || !updated.CustomerResponse.Accepted {
		t.Error("customer response not recorded")
	}

	project, _ := f.projectRepo.GetByQuoteID(context.Background(), quote.ID)
	if project == nil {
		t.Fatal("acceptance must create a project")
	}
	if project.Status != enum.ProjectStatusPlanning {
		t.Errorf("project status = %s, want planning", project.Status)
	}
	wantNumber := formattedNumber(entity.SequenceKindProject, 1)
	if project.Number != wantNumber {
		t.Errorf("project number = %s, want %s", project.Number, wantNumber)
	}
}

func TestRespondRejectLeavesNoProject(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusVerzonden)

	updated, err := f.svc.Respond(context.Background(), quote.ID, &RespondInput{Accepted: false})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if updated.Status != enum.QuoteStatusAfgewezen {
		t.Errorf("Status = %s, want afgewezen", updated.Status)
	}

	project, _ := f.projectRepo.GetByQuoteID(context.Background(), quote.ID)
	if project != nil {
		t.Error("rejection must not create a project")
	}
}

func TestRespondOnConceptRejected(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusConcept)

	_, err := f.svc.Respond(context.Background(), quote.ID, &RespondInput{Accepted: true})
	if !apperror.IsKind(err, apperror.KindPrecondition) {
		t.Fatalf("error = %v, want precondition", err)
	}
}

func TestReopenRejectedQuote(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusAfgewezen)
	token := "stale"
	now := time.Now()
	quote.ShareToken = &token
	quote.SentAt = &now
	quote.CustomerResponse = &entity.CustomerResponse{Accepted: false}

	updated, err := f.svc.Reopen(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("Reopen() error = %v", err)
	}
	if updated.Status != enum.QuoteStatusConcept {
		t.Errorf("Status = %s, want concept", updated.Status)
	}
	if updated.ShareToken != nil || updated.SentAt != nil || updated.CustomerResponse != nil {
		t.Error("reopen must clear the share token, sent timestamp and response")
	}
}

// Reopening revokes the customer's link: the old token must stop resolving
// even though its signature is still valid.
func TestReopenRevokesShareToken(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusConcept)

	if _, err := f.svc.SaveEstimation(context.Background(), quote.ID, validEstimationInput()); err != nil {
		t.Fatalf("SaveEstimation() error = %v", err)
	}
	sent, err := f.svc.Send(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	oldToken := *sent.ShareToken

	if _, err := f.svc.Respond(context.Background(), quote.ID, &RespondInput{Accepted: false}); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if _, err := f.svc.Reopen(context.Background(), quote.ID); err != nil {
		t.Fatalf("Reopen() error = %v", err)
	}

	_, err = f.svc.GetByShareToken(context.Background(), oldToken)
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("GetByShareToken() after reopen error = %v, want not found", err)
	}
}

func TestReopenSentQuoteRejected(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusVerzonden)

	_, err := f.svc.Reopen(context.Background(), quote.ID)
	if !apperror.IsKind(err, apperror.KindPrecondition) {
		t.Fatalf("error = %v, want precondition", err)
	}
}

// Recalculate regenerates lines from scope data, replacing manual edits.
func TestRecalculateReplacesLineItems(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusVoorcalculatie)
	in := validEstimationInput()
	quote.ScopeData = &in

	// a manually added line that recalculation will discard
	if _, err := f.svc.AddLineItem(context.Background(), quote.ID, &LineItemInput{
		Description: "Handmatige regel",
		Quantity:    1,
		UnitPrice:   999,
		Kind:        enum.LineKindMaterial,
	}); err != nil {
		t.Fatalf("AddLineItem() error = %v", err)
	}

	if _, err := f.svc.Recalculate(context.Background(), quote.ID); err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}

	lines, _ := f.lineItemRepo.GetByQuoteID(context.Background(), quote.ID)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2 (labor + material)", len(lines))
	}
	var labor, material *entity.QuoteLineItem
	for i := range lines {
		switch lines[i].Kind {
		case enum.LineKindLabor:
			labor = &lines[i]
		case enum.LineKindMaterial:
			material = &lines[i]
		}
	}
	if labor == nil || material == nil {
		t.Fatal("expected one labor and one material line")
	}
	// 40 m2 * 0.75 = 30 hours at the default rate of 45
	if labor.Quantity != 30 || labor.UnitPrice != 45 {
		t.Errorf("labor line = %v x %v, want 30 x 45", labor.Quantity, labor.UnitPrice)
	}
	if material.LineTotal != 500 {
		t.Errorf("material line total = %v, want 500", material.LineTotal)
	}
}

func TestRecalculateWithoutScopeData(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusConcept)

	_, err := f.svc.Recalculate(context.Background(), quote.ID)
	if !apperror.IsKind(err, apperror.KindPrecondition) {
		t.Fatalf("error = %v, want precondition", err)
	}
}

// Recalculating twice from the same scope data yields identical lines.
func TestRecalculateDeterministic(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusVoorcalculatie)
	in := validEstimationInput()
	quote.ScopeData = &in

	if _, err := f.svc.Recalculate(context.Background(), quote.ID); err != nil {
		t.Fatalf("first Recalculate() error = %v", err)
	}
	first, _ := f.lineItemRepo.GetByQuoteID(context.Background(), quote.ID)

	if _, err := f.svc.Recalculate(context.Background(), quote.ID); err != nil {
		t.Fatalf("second Recalculate() error = %v", err)
	}
	second, _ := f.lineItemRepo.GetByQuoteID(context.Background(), quote.ID)

	if len(first) != len(second) {
		t.Fatalf("line count changed: %d vs %d", len(first), len(second))
	}
	totalOf := func(lines []entity.QuoteLineItem) float64 {
		var sum float64
		for _, l := range lines {
			sum += l.LineTotal
		}
		return sum
	}
	if totalOf(first) != totalOf(second) {
		t.Errorf("totals differ: %v vs %v", totalOf(first), totalOf(second))
	}
}

func TestGetQuoteDerivesTotals(t *testing.T) {
	f := newQuoteServiceFixture()
	quote := f.quote(enum.QuoteStatusConcept)
	quote.LineItems = []entity.QuoteLineItem{
		{QuoteID: quote.ID, Kind: enum.LineKindLabor, Quantity: 10, UnitPrice: 55, LineTotal: 550},
	}

	got, err := f.svc.GetQuote(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}
	if got.Totals.TotalInclVat != 765.33 {
		t.Errorf("TotalInclVat = %v, want 765.33", got.Totals.TotalInclVat)
	}
}
