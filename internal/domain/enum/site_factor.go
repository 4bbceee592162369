package enum

// Accessibility describes how easily the site can be reached with people
// and machines. It scales the estimated norm hours.
type Accessibility string

const (
	AccessibilityGoed    Accessibility = "goed"
	AccessibilityBeperkt Accessibility = "beperkt"
	AccessibilitySlecht  Accessibility = "slecht"
)

// IsValid reports whether a is a known accessibility level
func (a Accessibility) IsValid() bool {
	switch a {
	case AccessibilityGoed, AccessibilityBeperkt, AccessibilitySlecht:
		return true
	}
	return false
}

// NeglectLevel describes the backlog severity of an existing garden.
// Overdue maintenance inflates the norm hours.
type NeglectLevel string

const (
	NeglectGeen  NeglectLevel = "geen"
	NeglectLicht NeglectLevel = "licht"
	NeglectZwaar NeglectLevel = "zwaar"
)

// IsValid reports whether n is a known neglect level
func (n NeglectLevel) IsValid() bool {
	switch n {
	case NeglectGeen, NeglectLicht, NeglectZwaar:
		return true
	}
	return false
}
