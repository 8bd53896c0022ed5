package rules

import (
	"testing"

	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/norm"
)

func TestLookup_EveryEntryHasAField(t *testing.T) {
	for _, c := range Norms() {
		e, ok := Lookup(c)
		if !ok {
			t.Fatalf("Lookup(%s) failed for a listed norm", c)
		}
		_, hasInitial := e.InitialHours()
		_, hasRecurring := e.RecurringHours()
		_, hasValidity := e.ValidityYears()
		if !hasInitial && !hasRecurring && !hasValidity {
			t.Errorf("%s has no fields set", c)
		}
	}
}

func TestLookup_Entries(t *testing.T) {
	tests := []struct {
		norm      norm.Canonical
		initial   *int
		recurring *int
		years     int
	}{
		{norm.NR06, intp(3), intp(3), 10},
		{norm.NR10, intp(40), intp(40), 2},
		{norm.NR11, nil, intp(16), 3},
		{norm.NR33, nil, nil, 1},
		{norm.NR35, intp(8), intp(8), 2},
		{norm.FireBrigade, nil, nil, 1},
		{norm.TechnicalRescue, nil, nil, 1},
		{norm.WorkPermit, nil, nil, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.norm), func(t *testing.T) {
			e, ok := Lookup(tt.norm)
			if !ok {
				t.Fatal("expected catalog entry")
			}
			if y, ok := e.ValidityYears(); !ok || y != tt.years {
				t.Errorf("expected %d years, got %d (%v)", tt.years, y, ok)
			}
			checkHours(t, "initial", tt.initial, ptr(e.InitialHours()))
			checkHours(t, "recurring", tt.recurring, ptr(e.RecurringHours()))
		})
	}
}

func checkHours(t *testing.T, label string, want, got *int) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("%s hours: expected none, got %d", label, *got)
	case want != nil && got == nil:
		t.Errorf("%s hours: expected %d, got none", label, *want)
	case want != nil && *want != *got:
		t.Errorf("%s hours: expected %d, got %d", label, *want, *got)
	}
}

func intp(v int) *int { return &v }

func TestLookup_TieredNormNotFlat(t *testing.T) {
	if _, ok := Lookup(TieredNorm); ok {
		t.Errorf("%s must only be keyed by module", TieredNorm)
	}
}

func TestLookupTier(t *testing.T) {
	tests := []struct {
		module string
		want   string
		years  int
		ok     bool
	}{
		{"Básico", "Básico", 3, true},
		{"intermediário", "Intermediário", 2, true},
		{"AVANÇADO I", "Avançado I", 2, true},
		{"Avançado II", "Avançado II", 1, true},
		{"  avancado ii ", "Avançado II", 1, true},
		{"Avançado", "", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			tier, ok := LookupTier(tt.module)
			if ok != tt.ok {
				t.Fatalf("LookupTier(%q) ok = %v, want %v", tt.module, ok, tt.ok)
			}
			if !ok {
				return
			}
			if tier.Name != tt.want {
				t.Errorf("expected tier %q, got %q", tt.want, tier.Name)
			}
			if y, _ := tier.Entry.ValidityYears(); y != tt.years {
				t.Errorf("expected %d years, got %d", tt.years, y)
			}
		})
	}
}

func TestTiers_CopyIsIsolated(t *testing.T) {
	got := Tiers()
	got[0].Name = "changed"
	if Tiers()[0].Name != "Básico" {
		t.Error("Tiers must return a copy")
	}
}

func TestShortestTierValidity(t *testing.T) {
	if got := shortestTierValidity(); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestInferTier(t *testing.T) {
	tests := []struct {
		name  string
		hours int
		kind  model.TrainingKind
		want  string
		ok    bool
	}{
		{"basic initial", 8, model.TrainingInitial, "Básico", true},
		{"intermediate initial", 16, model.TrainingInitial, "Intermediário", true},
		{"advanced I initial", 20, model.TrainingInitial, "Avançado I", true},
		{"advanced II initial", 32, model.TrainingInitial, "Avançado II", true},
		{"recurring takes first tier", 4, model.TrainingRecurring, "Básico", true},
		{"recurring mismatch", 8, model.TrainingRecurring, "", false},
		{"no match", 12, model.TrainingInitial, "", false},
		{"zero hours", 0, model.TrainingInitial, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, ok := InferTier(tt.hours, tt.kind)
			if ok != tt.ok {
				t.Fatalf("InferTier(%d, %s) ok = %v, want %v", tt.hours, tt.kind, ok, tt.ok)
			}
			if tier.Name != tt.want {
				t.Errorf("expected tier %q, got %q", tt.want, tier.Name)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	rows := Catalog()
	if len(rows) != len(Norms())+len(Tiers()) {
		t.Fatalf("expected %d rows, got %d", len(Norms())+len(Tiers()), len(rows))
	}

	var permit, advanced *Row
	for i := range rows {
		switch {
		case rows[i].Norm == norm.WorkPermit:
			permit = &rows[i]
		case rows[i].Norm == TieredNorm && rows[i].Tier == "Avançado I":
			advanced = &rows[i]
		}
	}
	if permit == nil || permit.ValidityYears == nil || *permit.ValidityYears != 1 || permit.InitialHours != nil {
		t.Errorf("unexpected work permit row: %+v", permit)
	}
	if advanced == nil || advanced.InitialHours == nil || *advanced.InitialHours != 20 {
		t.Errorf("unexpected tier row: %+v", advanced)
	}
}
