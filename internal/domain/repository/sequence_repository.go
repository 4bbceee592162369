package repository

import "context"

// NumberSequenceRepository issues the next document number for a kind and
// year. Numbers are strictly increasing and unique; the implementation
// increments the sequence row inside a transaction.
type NumberSequenceRepository interface {
	Next(ctx context.Context, kind string, year int) (string, error)
}
