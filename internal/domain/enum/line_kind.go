package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// LineKind tags a quote line as material, labor or machine work. The three
// kinds share one record shape; only the aggregation rule differs.
type LineKind int

const (
	LineKindMaterial LineKind = 0
	LineKindLabor    LineKind = 1
	LineKindMachine  LineKind = 2
)

// IsValid reports whether k is one of the three known kinds
func (k LineKind) IsValid() bool {
	return k >= LineKindMaterial && k <= LineKindMachine
}

// CountsAsLaborCost reports whether the line total belongs to labor cost.
// Machine hours are costed as labor but not counted as labor hours.
func (k LineKind) CountsAsLaborCost() bool {
	return k == LineKindLabor || k == LineKindMachine
}

func (k LineKind) String() string {
	return [...]string{"material", "labor", "machine"}[k]
}

func (k LineKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *LineKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = LineKind(i)
		return nil
	}
	switch str {
	case "material":
		*k = LineKindMaterial
	case "labor":
		*k = LineKindLabor
	case "machine":
		*k = LineKindMachine
	}
	return nil
}

func (k LineKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *LineKind) Scan(value interface{}) error {
	if value == nil {
		*k = LineKindMaterial
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = LineKind(v)
	case int:
		*k = LineKind(v)
	}
	return nil
}
