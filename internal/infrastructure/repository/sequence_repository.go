package repository

import (
	"context"
	"errors"

	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	domainRepo "github.com/groenwerk/hovenier-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type numberSequenceRepository struct {
	db *gorm.DB
}

// NewNumberSequenceRepository creates the numbering collaborator backed by
// the number_sequences table.
func NewNumberSequenceRepository(db *gorm.DB) domainRepo.NumberSequenceRepository {
	return &numberSequenceRepository{db: db}
}

// Next increments and returns the formatted next number for kind and year.
// The sequence row is locked for the duration of the transaction, so issued
// numbers are strictly increasing and never reused.
func (r *numberSequenceRepository) Next(ctx context.Context, kind string, year int) (string, error) {
	var formatted string
	run := func(tx *gorm.DB) error {
		var seq entity.NumberSequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "kind = ? AND year = ?", kind, year).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = entity.NumberSequence{Kind: kind, Year: year, LastValue: 0}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		seq.LastValue++
		if err := tx.Model(&entity.NumberSequence{}).
			Where("kind = ? AND year = ?", kind, year).
			Update("last_value", seq.LastValue).Error; err != nil {
			return err
		}

		formatted = seq.Format(seq.LastValue)
		return nil
	}

	// Join an enclosing transaction when one is present; otherwise open our
	// own so the increment stays atomic.
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		if err := run(tx); err != nil {
			return "", err
		}
		return formatted, nil
	}
	if err := r.db.WithContext(ctx).Transaction(run); err != nil {
		return "", err
	}
	return formatted, nil
}
