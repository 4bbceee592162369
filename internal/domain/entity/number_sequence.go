package entity

import "fmt"

// Sequence kinds issued by the numbering collaborator
const (
	SequenceKindQuote   = "quote"
	SequenceKindProject = "project"
	SequenceKindInvoice = "invoice"
)

// NumberSequence issues strictly increasing document numbers per kind and
// year. The row is incremented inside a transaction so numbers are unique.
type NumberSequence struct {
	Kind      string `gorm:"size:20;primaryKey" json:"kind"`
	Year      int    `gorm:"primaryKey" json:"year"`
	LastValue int    `gorm:"default:0" json:"last_value"`
}

// TableName returns the table name for the NumberSequence model
func (NumberSequence) TableName() string {
	return "number_sequences"
}

// Format renders a document number such as OFF-2026-0012
func (s *NumberSequence) Format(value int) string {
	prefix := map[string]string{
		SequenceKindQuote:   "OFF",
		SequenceKindProject: "PRJ",
		SequenceKindInvoice: "FAC",
	}[s.Kind]
	return fmt.Sprintf("%s-%d-%04d", prefix, s.Year, value)
}
