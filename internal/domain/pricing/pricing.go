package pricing

import (
	"math"

	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
)

// Settings are the pricing inputs supplied by the settings collaborator
type Settings struct {
	DefaultMarginPercent float64
	VatPercent           float64
	PerScopeMargins      map[enum.ScopeTag]float64
}

// Totals is the derived aggregate of a quote's line items. It is never
// persisted independently of its inputs; recompute it whenever lines change.
type Totals struct {
	MaterialCost  float64 `json:"material_cost"`
	LaborCost     float64 `json:"labor_cost"`
	TotalHours    float64 `json:"total_hours"`
	Subtotal      float64 `json:"subtotal"`
	MarginPercent float64 `json:"margin_percent"`
	MarginAmount  float64 `json:"margin_amount"`
	TotalExVat    float64 `json:"total_ex_vat"`
	VatPercent    float64 `json:"vat_percent"`
	VatAmount     float64 `json:"vat_amount"`
	TotalInclVat  float64 `json:"total_incl_vat"`
}

// ResolveMargin returns the margin percentage for one line. Precedence:
// line override, then per-scope table, then the global default.
func ResolveMargin(line *entity.QuoteLineItem, s Settings) float64 {
	if line.MarginPercentOverride != nil {
		return *line.MarginPercentOverride
	}
	if s.PerScopeMargins != nil {
		if m, ok := s.PerScopeMargins[line.Scope]; ok {
			return m
		}
	}
	return s.DefaultMarginPercent
}

// roundCents rounds a monetary amount to whole cents. Applied only at the
// display boundary; intermediate sums stay at full precision.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals aggregates line items into quote totals. Pure and
// repeatable: the same lines and settings always produce identical output.
//
// Margin is resolved per line and summed, so mixed overrides never apply a
// single percentage to the whole aggregate. Aggregate fields are built from
// the already-rounded parts, keeping subtotal == materialCost + laborCost
// and totalInclVat == totalExVat + vatAmount exact.
func ComputeTotals(lines []entity.QuoteLineItem, s Settings) Totals {
	var materialRaw, laborRaw, hours, marginRaw float64

	for i := range lines {
		line := &lines[i]
		total := line.Quantity * line.UnitPrice
		switch {
		case line.Kind == enum.LineKindMaterial:
			materialRaw += total
		case line.Kind.CountsAsLaborCost():
			laborRaw += total
		}
		if line.Kind == enum.LineKindLabor {
			hours += line.Quantity
		}
		marginRaw += total * ResolveMargin(line, s) / 100
	}

	materialCost := roundCents(materialRaw)
	laborCost := roundCents(laborRaw)
	subtotal := materialCost + laborCost
	marginAmount := roundCents(marginRaw)
	totalExVat := subtotal + marginAmount
	// totalExVat is cent-exact, so totalExVat * VatPercent is the VAT in
	// cents without float noise; dividing by 100 first would lose the exact
	// half-cent cases
	vatAmount := math.Round(totalExVat*s.VatPercent) / 100

	return Totals{
		MaterialCost:  materialCost,
		LaborCost:     laborCost,
		TotalHours:    hours,
		Subtotal:      subtotal,
		MarginPercent: s.DefaultMarginPercent,
		MarginAmount:  marginAmount,
		TotalExVat:    totalExVat,
		VatPercent:    s.VatPercent,
		VatAmount:     vatAmount,
		TotalInclVat:  totalExVat + vatAmount,
	}
}

// ComputeInvoiceTotals aggregates invoice snapshot lines plus manual
// corrections. Corrections adjust the ex-VAT total before VAT is applied.
func ComputeInvoiceTotals(lines []entity.InvoiceLineItem, corrections []entity.InvoiceCorrection, vatPercent float64) (subtotal, totalExVat, vatAmount, totalInclVat float64) {
	var raw float64
	for i := range lines {
		raw += lines[i].Quantity * lines[i].UnitPrice
	}
	subtotal = roundCents(raw)

	var correctionsRaw float64
	for _, c := range corrections {
		correctionsRaw += c.Amount
	}
	totalExVat = subtotal + roundCents(correctionsRaw)
	vatAmount = math.Round(totalExVat*vatPercent) / 100
	totalInclVat = totalExVat + vatAmount
	return subtotal, totalExVat, vatAmount, totalInclVat
}
