package enum

import "testing"

func TestQuoteStatusTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   QuoteStatus
		to     QuoteStatus
		want   bool
	}{
		{"concept to voorcalculatie", QuoteStatusConcept, QuoteStatusVoorcalculatie, true},
		{"voorcalculatie back to concept", QuoteStatusVoorcalculatie, QuoteStatusConcept, true},
		{"voorcalculatie to verzonden", QuoteStatusVoorcalculatie, QuoteStatusVerzonden, true},
		{"verzonden to geaccepteerd", QuoteStatusVerzonden, QuoteStatusGeaccepteerd, true},
		{"verzonden to afgewezen", QuoteStatusVerzonden, QuoteStatusAfgewezen, true},
		{"reopen afgewezen to concept", QuoteStatusAfgewezen, QuoteStatusConcept, true},
		{"verzonden back to concept is illegal", QuoteStatusVerzonden, QuoteStatusConcept, false},
		{"concept cannot skip to verzonden", QuoteStatusConcept, QuoteStatusVerzonden, false},
		{"geaccepteerd is terminal", QuoteStatusGeaccepteerd, QuoteStatusConcept, false},
		{"afgewezen cannot go to verzonden", QuoteStatusAfgewezen, QuoteStatusVerzonden, false},
		{"self transition is illegal", QuoteStatusConcept, QuoteStatusConcept, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("%s.CanTransition(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestQuoteStatusIsTerminal(t *testing.T) {
	if !QuoteStatusGeaccepteerd.IsTerminal() {
		t.Error("geaccepteerd should be terminal")
	}
	if QuoteStatusAfgewezen.IsTerminal() {
		t.Error("afgewezen should not be terminal, it can reopen")
	}
}

func TestInvoiceStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from InvoiceStatus
		to   InvoiceStatus
		want bool
	}{
		{"concept to definitief", InvoiceStatusConcept, InvoiceStatusDefinitief, true},
		{"definitief to verzonden", InvoiceStatusDefinitief, InvoiceStatusVerzonden, true},
		{"verzonden to betaald", InvoiceStatusVerzonden, InvoiceStatusBetaald, true},
		{"verzonden to vervallen", InvoiceStatusVerzonden, InvoiceStatusVervallen, true},
		{"late payment on vervallen", InvoiceStatusVervallen, InvoiceStatusBetaald, true},
		{"betaald is terminal", InvoiceStatusBetaald, InvoiceStatusVervallen, false},
		{"concept cannot skip to verzonden", InvoiceStatusConcept, InvoiceStatusVerzonden, false},
		{"definitief back to concept is illegal", InvoiceStatusDefinitief, InvoiceStatusConcept, false},
		{"vervallen cannot revert to verzonden", InvoiceStatusVervallen, InvoiceStatusVerzonden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("%s.CanTransition(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestInvoiceStatusIsEditable(t *testing.T) {
	for _, s := range []InvoiceStatus{InvoiceStatusDefinitief, InvoiceStatusVerzonden, InvoiceStatusBetaald, InvoiceStatusVervallen} {
		if s.IsEditable() {
			t.Errorf("%s should not be editable", s)
		}
	}
	if !InvoiceStatusConcept.IsEditable() {
		t.Error("concept should be editable")
	}
}

func TestProjectStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from ProjectStatus
		to   ProjectStatus
		want bool
	}{
		{"planning to uitvoering", ProjectStatusPlanning, ProjectStatusUitvoering, true},
		{"uitvoering to nacalculatie", ProjectStatusUitvoering, ProjectStatusNacalculatie, true},
		{"nacalculatie to afgerond", ProjectStatusNacalculatie, ProjectStatusAfgerond, true},
		{"planning cannot skip to nacalculatie", ProjectStatusPlanning, ProjectStatusNacalculatie, false},
		{"no going back", ProjectStatusUitvoering, ProjectStatusPlanning, false},
		{"afgerond is terminal", ProjectStatusAfgerond, ProjectStatusPlanning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("%s.CanTransition(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
