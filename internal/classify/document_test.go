package classify

import (
	"testing"
	"time"

	"github.com/ppiankov/sstrack/internal/dates"
	"github.com/ppiankov/sstrack/internal/model"
)

func TestCompanyDocument(t *testing.T) {
	tests := []struct {
		in    string
		kind  model.DocKind
		years int
	}{
		{"PGR - Programa de Gerenciamento de Riscos", model.DocPGR, 2},
		{"programa de gerenciamento de riscos", model.DocPGR, 2},
		{"PCMSO", model.DocPCMSO, 1},
		{"Programa de Controle Médico de Saúde Ocupacional", model.DocPCMSO, 1},
		{"PPR - Proteção Respiratória", model.DocPPR, 1},
		{"pca", model.DocPCA, 1},
		{"laudo qualquer", model.DocOther, 1},
		{"", model.DocOther, 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := CompanyDocument(tt.in)
			if got.Kind != tt.kind || got.ValidityYears != tt.years {
				t.Errorf("CompanyDocument(%q) = %+v, want %s/%d", tt.in, got, tt.kind, tt.years)
			}
		})
	}
}

func TestCompanyDocument_FirstMatchWins(t *testing.T) {
	got := CompanyDocument("PGR e PCMSO consolidados")
	if got.Kind != model.DocPGR {
		t.Errorf("expected PGR, got %s", got.Kind)
	}
}

func TestDocument_ExpirationUsesDayOffsets(t *testing.T) {
	issued := dates.Day(2024, time.January, 10)

	pgr := CompanyDocument("PGR").Expiration(issued)
	if want := dates.Day(2026, time.January, 9); !pgr.Equal(want) {
		t.Errorf("expected %v (730 days), got %v", want, pgr)
	}

	other := CompanyDocument("laudo").Expiration(issued)
	if want := dates.Day(2025, time.January, 9); !other.Equal(want) {
		t.Errorf("expected %v (365 days), got %v", want, other)
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if kinds[0] != model.DocPGR || kinds[len(kinds)-1] != model.DocOther {
		t.Errorf("unexpected order %v", kinds)
	}
}

func TestLookup(t *testing.T) {
	if got := Lookup(model.DocPGR); got.ValidityYears != 2 {
		t.Errorf("expected PGR to be valid for 2 years, got %+v", got)
	}
	if got := Lookup(model.DocPCA); got.Kind != model.DocPCA || got.ValidityYears != 1 {
		t.Errorf("unexpected PCA classification %+v", got)
	}
	if got := Lookup("whatever"); got.Kind != model.DocOther {
		t.Errorf("expected Outro, got %+v", got)
	}
}
