package workflow

import (
	"encoding/json"

	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
)

// Step is one of the seven macro-stages a job moves through, from the first
// quote draft to the settled invoice.
type Step int

const (
	StepOfferte Step = iota
	StepVoorcalculatie
	StepProject
	StepPlanning
	StepUitvoering
	StepNacalculatie
	StepFactuur
)

// Steps lists the macro-stages in workflow order
var Steps = []Step{
	StepOfferte,
	StepVoorcalculatie,
	StepProject,
	StepPlanning,
	StepUitvoering,
	StepNacalculatie,
	StepFactuur,
}

func (s Step) String() string {
	return [...]string{"offerte", "voorcalculatie", "project", "planning", "uitvoering", "nacalculatie", "factuur"}[s]
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// State is the display state of one step
type State string

const (
	StateCompleted State = "completed"
	StateCurrent   State = "current"
	StateUpcoming  State = "upcoming"
)

// StepState pairs a step with its derived display state
type StepState struct {
	Step  Step  `json:"step"`
	State State `json:"state"`
}

// currentStep maps the known entity statuses onto the step the job is at.
// This is a pure derivation over already-known status fields; the workflow
// owns no state of its own.
func currentStep(quote *entity.Quote, project *entity.Project, invoice *entity.Invoice) Step {
	// A concept invoice is still being drafted; the project status stays
	// authoritative until the invoice is finalized.
	if invoice != nil && invoice.Status != enum.InvoiceStatusConcept {
		return StepFactuur
	}
	if project != nil {
		switch project.Status {
		case enum.ProjectStatusPlanning:
			return StepPlanning
		case enum.ProjectStatusUitvoering:
			return StepUitvoering
		case enum.ProjectStatusNacalculatie, enum.ProjectStatusAfgerond:
			return StepNacalculatie
		}
		return StepProject
	}
	switch quote.Status {
	case enum.QuoteStatusConcept:
		return StepOfferte
	case enum.QuoteStatusVoorcalculatie:
		return StepVoorcalculatie
	case enum.QuoteStatusVerzonden, enum.QuoteStatusAfgewezen:
		// Voorcalculatie is behind us; the project step opens on acceptance
		return StepProject
	case enum.QuoteStatusGeaccepteerd:
		return StepProject
	}
	return StepOfferte
}

// Derive computes the completed/current/upcoming state of all seven steps
// for one quote and whatever follow-up entities exist. Project and invoice
// may be nil when the job has not progressed that far.
func Derive(quote *entity.Quote, project *entity.Project, invoice *entity.Invoice) []StepState {
	cur := currentStep(quote, project, invoice)

	// A paid invoice completes the whole chain
	done := invoice != nil && invoice.Status == enum.InvoiceStatusBetaald

	states := make([]StepState, len(Steps))
	for i, step := range Steps {
		switch {
		case done || step < cur:
			states[i] = StepState{Step: step, State: StateCompleted}
		case step == cur:
			states[i] = StepState{Step: step, State: StateCurrent}
		default:
			states[i] = StepState{Step: step, State: StateUpcoming}
		}
	}
	return states
}
