package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProjectStatus tracks a project through planning and execution up to the
// post-calculation. It drives the middle steps of the workflow overview.
type ProjectStatus int

const (
	ProjectStatusPlanning     ProjectStatus = 0
	ProjectStatusUitvoering   ProjectStatus = 1
	ProjectStatusNacalculatie ProjectStatus = 2
	ProjectStatusAfgerond     ProjectStatus = 3
)

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusPlanning:     {ProjectStatusUitvoering},
	ProjectStatusUitvoering:   {ProjectStatusNacalculatie},
	ProjectStatusNacalculatie: {ProjectStatusAfgerond},
	ProjectStatusAfgerond:     {},
}

// CanTransition reports whether the edge from s to target exists
func (s ProjectStatus) CanTransition(target ProjectStatus) bool {
	for _, next := range projectTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s ProjectStatus) String() string {
	return [...]string{"planning", "uitvoering", "nacalculatie", "afgerond"}[s]
}

func (s ProjectStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ProjectStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ProjectStatus(i)
		return nil
	}
	switch str {
	case "planning":
		*s = ProjectStatusPlanning
	case "uitvoering":
		*s = ProjectStatusUitvoering
	case "nacalculatie":
		*s = ProjectStatusNacalculatie
	case "afgerond":
		*s = ProjectStatusAfgerond
	}
	return nil
}

func (s ProjectStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ProjectStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ProjectStatusPlanning
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ProjectStatus(v)
	case int:
		*s = ProjectStatus(v)
	}
	return nil
}
