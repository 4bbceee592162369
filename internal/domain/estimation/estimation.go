package estimation

import (
	"math"
	"sort"

	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
)

// Site factor multipliers. Restricted access and overdue maintenance both
// inflate the normed hours; a multiplier is never below 1.
var accessibilityFactors = map[enum.Accessibility]float64{
	enum.AccessibilityGoed:    1.0,
	enum.AccessibilityBeperkt: 1.2,
	enum.AccessibilitySlecht:  1.5,
}

var neglectFactors = map[enum.NeglectLevel]float64{
	enum.NeglectGeen:  1.0,
	enum.NeglectLicht: 1.15,
	enum.NeglectZwaar: 1.35,
}

// NormTable maps a scope tag to its base norm hours per unit of work.
// It is supplied by the norm-hours collaborator.
type NormTable map[enum.ScopeTag]float64

// ScopeInput carries the recorded parameters for one selected scope
type ScopeInput struct {
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit,omitempty"`
	MaterialCost float64 `json:"material_cost,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// Input is everything the voorcalculatie needs: the selected scopes with
// their parameters, the site conditions and the team setup.
type Input struct {
	Scopes               []enum.ScopeTag             `json:"scopes"`
	ScopeData            map[enum.ScopeTag]ScopeInput `json:"scope_data"`
	Accessibility        enum.Accessibility          `json:"accessibility"`
	Neglect              enum.NeglectLevel           `json:"neglect"`
	TeamSize             int                         `json:"team_size"`
	TeamMembers          []string                    `json:"team_members,omitempty"`
	EffectiveHoursPerDay float64                     `json:"effective_hours_per_day"`
}

// Result is the voorcalculatie outcome. It is recomputable at any time from
// the same input and must come out identical on every run.
type Result struct {
	TeamSize             int                      `json:"team_size"`
	TeamMembers          []string                 `json:"team_members,omitempty"`
	EffectiveHoursPerDay float64                  `json:"effective_hours_per_day"`
	NormHoursPerScope    map[enum.ScopeTag]float64 `json:"norm_hours_per_scope"`
	NormHoursTotal       float64                  `json:"norm_hours_total"`
	EstimatedDays        int                      `json:"estimated_days"`
}

// Estimate converts scope selections and site conditions into normed labor
// hours and a team-day estimate. Pure: no clock, no randomness, no I/O.
func Estimate(in Input, norms NormTable) (*Result, error) {
	if in.TeamSize < 2 || in.TeamSize > 4 {
		return nil, apperror.NewValidationError("Team size must be 2, 3 or 4",
			apperror.FieldError{Field: "team_size", Message: "must be between 2 and 4"})
	}
	if in.EffectiveHoursPerDay <= 0 {
		return nil, apperror.NewValidationError("Effective hours per day must be positive",
			apperror.FieldError{Field: "effective_hours_per_day", Message: "must be greater than 0"})
	}
	if !in.Accessibility.IsValid() {
		return nil, apperror.NewValidationError("Unknown accessibility level",
			apperror.FieldError{Field: "accessibility", Message: "must be goed, beperkt or slecht"})
	}
	if !in.Neglect.IsValid() {
		return nil, apperror.NewValidationError("Unknown neglect level",
			apperror.FieldError{Field: "neglect", Message: "must be geen, licht or zwaar"})
	}

	accessFactor := accessibilityFactors[in.Accessibility]
	neglectFactor := neglectFactors[in.Neglect]

	perScope := make(map[enum.ScopeTag]float64, len(in.Scopes))
	var total float64

	// Iterate scopes in sorted order so the summation order, and with it the
	// floating point result, is identical on every call.
	scopes := append([]enum.ScopeTag(nil), in.Scopes...)
	sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })

	for _, scope := range scopes {
		base, ok := norms[scope]
		if !ok {
			return nil, apperror.NewValidationError("No norm hours known for scope " + scope.String(),
				apperror.FieldError{Field: "scopes", Message: "unknown scope: " + scope.String()})
		}
		data := in.ScopeData[scope]
		if data.Quantity < 0 {
			return nil, apperror.NewValidationError("Scope quantity cannot be negative",
				apperror.FieldError{Field: "scope_data." + scope.String() + ".quantity", Message: "must be >= 0"})
		}
		hours := base * data.Quantity * accessFactor * neglectFactor
		perScope[scope] = hours
		total += hours
	}

	days := int(math.Ceil(total / (float64(in.TeamSize) * in.EffectiveHoursPerDay)))

	return &Result{
		TeamSize:             in.TeamSize,
		TeamMembers:          in.TeamMembers,
		EffectiveHoursPerDay: in.EffectiveHoursPerDay,
		NormHoursPerScope:    perScope,
		NormHoursTotal:       total,
		EstimatedDays:        days,
	}, nil
}
