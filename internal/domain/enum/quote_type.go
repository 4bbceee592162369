package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QuoteType distinguishes installation (aanleg) from maintenance (onderhoud)
type QuoteType int

const (
	QuoteTypeAanleg    QuoteType = 0
	QuoteTypeOnderhoud QuoteType = 1
)

func (t QuoteType) String() string {
	return [...]string{"aanleg", "onderhoud"}[t]
}

func (t QuoteType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *QuoteType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = QuoteType(i)
		return nil
	}
	switch str {
	case "aanleg":
		*t = QuoteTypeAanleg
	case "onderhoud":
		*t = QuoteTypeOnderhoud
	}
	return nil
}

func (t QuoteType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *QuoteType) Scan(value interface{}) error {
	if value == nil {
		*t = QuoteTypeAanleg
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = QuoteType(v)
	case int:
		*t = QuoteType(v)
	}
	return nil
}
