package service

import (
	"context"
	"testing"

	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"github.com/groenwerk/hovenier-api/pkg/apperror"
)

func TestUpsertNormHourCreatesAndReplaces(t *testing.T) {
	repo := newMockNormHourRepo()
	svc := NewNormHourService(repo)

	// a scope without a row becomes estimable once upserted
	created, err := svc.UpsertNormHour(context.Background(), &NormHourInput{
		Scope:        enum.ScopeVijver,
		HoursPerUnit: 2.5,
		Unit:         "m2",
	})
	if err != nil {
		t.Fatalf("UpsertNormHour() error = %v", err)
	}
	if created.HoursPerUnit != 2.5 {
		t.Errorf("HoursPerUnit = %v, want 2.5", created.HoursPerUnit)
	}

	// upserting the same scope replaces, not duplicates
	replaced, err := svc.UpsertNormHour(context.Background(), &NormHourInput{
		Scope:        enum.ScopeVijver,
		HoursPerUnit: 3,
		Unit:         "m2",
	})
	if err != nil {
		t.Fatalf("second UpsertNormHour() error = %v", err)
	}
	if replaced.ID != created.ID {
		t.Error("upsert must keep the existing row's identity")
	}
	if replaced.HoursPerUnit != 3 {
		t.Errorf("HoursPerUnit = %v, want 3", replaced.HoursPerUnit)
	}

	table, err := svc.Table(context.Background())
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if table[enum.ScopeVijver] != 3 {
		t.Errorf("table[vijver] = %v, want 3", table[enum.ScopeVijver])
	}
}

func TestUpsertNormHourValidation(t *testing.T) {
	tests := []struct {
		name  string
		input NormHourInput
	}{
		{"missing scope", NormHourInput{HoursPerUnit: 1, Unit: "m2"}},
		{"zero hours", NormHourInput{Scope: enum.ScopeGazon, HoursPerUnit: 0, Unit: "m2"}},
		{"negative hours", NormHourInput{Scope: enum.ScopeGazon, HoursPerUnit: -1, Unit: "m2"}},
		{"missing unit", NormHourInput{Scope: enum.ScopeGazon, HoursPerUnit: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewNormHourService(newMockNormHourRepo())

			_, err := svc.UpsertNormHour(context.Background(), &tt.input)
			if !apperror.IsKind(err, apperror.KindValidation) {
				t.Fatalf("error = %v, want validation", err)
			}
		})
	}
}

func TestDeleteNormHourMakesScopeUnpriceable(t *testing.T) {
	repo := newMockNormHourRepo()
	svc := NewNormHourService(repo)

	existing, _ := repo.GetByScope(context.Background(), enum.ScopeGazon)
	if err := svc.DeleteNormHour(context.Background(), existing.ID); err != nil {
		t.Fatalf("DeleteNormHour() error = %v", err)
	}

	table, _ := svc.Table(context.Background())
	if _, ok := table[enum.ScopeGazon]; ok {
		t.Error("deleted scope must leave the norm table")
	}
}
