package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle status of a factuur
type InvoiceStatus int

const (
	InvoiceStatusConcept    InvoiceStatus = 0
	InvoiceStatusDefinitief InvoiceStatus = 1
	InvoiceStatusVerzonden  InvoiceStatus = 2
	InvoiceStatusBetaald    InvoiceStatus = 3
	InvoiceStatusVervallen  InvoiceStatus = 4
)

// invoiceTransitions is the exhaustive edge list of the invoice state
// machine. Vervallen is reachable only from verzonden (past-due sweep) and
// may still transition to betaald when a late payment arrives.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusConcept:    {InvoiceStatusDefinitief},
	InvoiceStatusDefinitief: {InvoiceStatusVerzonden},
	InvoiceStatusVerzonden:  {InvoiceStatusBetaald, InvoiceStatusVervallen},
	InvoiceStatusBetaald:    {},
	InvoiceStatusVervallen:  {InvoiceStatusBetaald},
}

// CanTransition reports whether the edge from s to target exists
func (s InvoiceStatus) CanTransition(target InvoiceStatus) bool {
	for _, next := range invoiceTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsEditable reports whether line items may still be modified
func (s InvoiceStatus) IsEditable() bool {
	return s == InvoiceStatusConcept
}

func (s InvoiceStatus) String() string {
	return [...]string{"concept", "definitief", "verzonden", "betaald", "vervallen"}[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "concept":
		*s = InvoiceStatusConcept
	case "definitief":
		*s = InvoiceStatusDefinitief
	case "verzonden":
		*s = InvoiceStatusVerzonden
	case "betaald":
		*s = InvoiceStatusBetaald
	case "vervallen":
		*s = InvoiceStatusVervallen
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusConcept
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
