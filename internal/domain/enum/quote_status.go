package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QuoteStatus represents the lifecycle status of an offerte
type QuoteStatus int

const (
	QuoteStatusConcept        QuoteStatus = 0
	QuoteStatusVoorcalculatie QuoteStatus = 1
	QuoteStatusVerzonden      QuoteStatus = 2
	QuoteStatusGeaccepteerd   QuoteStatus = 3
	QuoteStatusAfgewezen      QuoteStatus = 4
)

// quoteTransitions is the exhaustive edge list of the quote state machine.
// Anything not listed here is illegal, including verzonden -> concept.
// Afgewezen -> concept is the explicit reopen edge for re-quoting.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusConcept:        {QuoteStatusVoorcalculatie},
	QuoteStatusVoorcalculatie: {QuoteStatusConcept, QuoteStatusVerzonden},
	QuoteStatusVerzonden:      {QuoteStatusGeaccepteerd, QuoteStatusAfgewezen},
	QuoteStatusGeaccepteerd:   {},
	QuoteStatusAfgewezen:      {QuoteStatusConcept},
}

// CanTransition reports whether the edge from s to target exists
func (s QuoteStatus) CanTransition(target QuoteStatus) bool {
	for _, next := range quoteTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the quote can still change status
func (s QuoteStatus) IsTerminal() bool {
	return len(quoteTransitions[s]) == 0
}

func (s QuoteStatus) String() string {
	return [...]string{"concept", "voorcalculatie", "verzonden", "geaccepteerd", "afgewezen"}[s]
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	switch str {
	case "concept":
		*s = QuoteStatusConcept
	case "voorcalculatie":
		*s = QuoteStatusVoorcalculatie
	case "verzonden":
		*s = QuoteStatusVerzonden
	case "geaccepteerd":
		*s = QuoteStatusGeaccepteerd
	case "afgewezen":
		*s = QuoteStatusAfgewezen
	}
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusConcept
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
