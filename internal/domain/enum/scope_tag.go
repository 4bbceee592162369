package enum

// ScopeTag identifies a category of landscaping work selected for a quote.
// The set is open: the norm-hours table defines which tags are priceable.
type ScopeTag string

const (
	ScopeBestrating ScopeTag = "bestrating"
	ScopeSchutting  ScopeTag = "schutting"
	ScopeGazon      ScopeTag = "gazon"
	ScopeBeplanting ScopeTag = "beplanting"
	ScopeVijver     ScopeTag = "vijver"
	ScopeSnoeien    ScopeTag = "snoeien"
	ScopeGrondwerk  ScopeTag = "grondwerk"
)

func (t ScopeTag) String() string {
	return string(t)
}
